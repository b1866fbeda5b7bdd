package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/apperr"
	"campusmarket/internal/middleware"
	"campusmarket/internal/service"
)

// UserHandler handles profile and admin user endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetAllUsers godoc
// @Summary List active users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /users [get]
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.userService.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, users)
}

// GetCurrentUser godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/me [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("Not authenticated")
	}

	user, err := h.userService.GetCurrentUser(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// UpdateCurrentUser godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateUserRequest true "Profile patch"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /users/me [put]
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("Not authenticated")
	}

	var req UpdateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.Empty() {
		return emptyPatchError()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateCurrentUser(c.Request().Context(), identity.ID, req.ToInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// DeleteCurrentUser godoc
// @Summary Delete own account
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /users/me [delete]
func (h *UserHandler) DeleteCurrentUser(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("Not authenticated")
	}

	if err := h.userService.DeleteCurrentUser(c.Request().Context(), identity.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCurrentUserListings godoc
// @Summary List own listings
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /users/me/listings [get]
func (h *UserHandler) GetCurrentUserListings(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("Not authenticated")
	}

	listings, err := h.userService.GetCurrentUserListings(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listings)
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id}/role [patch]
func (h *UserHandler) UpdateUserRole(c echo.Context) error {
	id, err := pathID(c, "User")
	if err != nil {
		return err
	}

	var req UpdateRoleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateUserRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}
