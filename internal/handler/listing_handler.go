package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/apperr"
	"campusmarket/internal/middleware"
	"campusmarket/internal/service"
)

// ListingHandler handles listing endpoints.
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// GetAllListings godoc
// @Summary Browse available listings
// @Tags listings
// @Produce json
// @Param search query string false "Substring match on title or description"
// @Param category query string false "Category filter"
// @Param condition query string false "Condition filter"
// @Param minPrice query number false "Inclusive lower price bound"
// @Param maxPrice query number false "Inclusive upper price bound"
// @Param sortBy query string false "id, title, price or createdAt"
// @Param sortOrder query string false "asc or desc"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page start"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /listings [get]
func (h *ListingHandler) GetAllListings(c echo.Context) error {
	var q ListListingsQuery
	if err := c.Bind(&q); err != nil {
		return apperr.Validation([]apperr.FieldError{{
			Field:   "query",
			Message: "Invalid query parameters",
		}})
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	listings, err := h.listingService.GetAllListings(c.Request().Context(), q.ToFilter())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listings)
}

// GetListingByID godoc
// @Summary Get a listing
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListingByID(c echo.Context) error {
	id, err := pathID(c, "Listing")
	if err != nil {
		return err
	}

	listing, err := h.listingService.GetListingByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listing)
}

// CreateListing godoc
// @Summary Create a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateListingRequest true "Listing data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("Not authenticated")
	}

	var req CreateListingRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.listingService.CreateListing(c.Request().Context(), req.ToInput(identity.ID))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, listing)
}

// UpdateListing godoc
// @Summary Update a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body UpdateListingRequest true "Listing patch"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /listings/{id} [put]
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	id, err := pathID(c, "Listing")
	if err != nil {
		return err
	}

	var req UpdateListingRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.Empty() {
		return emptyPatchError()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.listingService.UpdateListing(c.Request().Context(), id, req.ToInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listing)
}

// DeleteListing godoc
// @Summary Delete a listing
// @Tags listings
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 204
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /listings/{id} [delete]
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	id, err := pathID(c, "Listing")
	if err != nil {
		return err
	}

	if err := h.listingService.DeleteListing(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
