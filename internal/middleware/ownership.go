package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/apperr"
	"campusmarket/internal/model"
	"campusmarket/internal/service"
)

// AuthorizeListingOwner admits the listing's seller or an admin. It
// authorizes by loading: a missing listing surfaces as 404 before any
// permission check, matching the public detail endpoint. Must run after
// Authenticate.
func AuthorizeListingOwner(listings service.ListingService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return apperr.Unauthorized("Not authenticated")
			}

			id, err := strconv.ParseUint(c.Param("id"), 10, 32)
			if err != nil || id == 0 {
				return apperr.Validation([]apperr.FieldError{{
					Field:   "id",
					Message: "Listing id must be a positive integer",
					Value:   c.Param("id"),
				}})
			}

			listing, err := listings.GetListingByID(c.Request().Context(), uint(id))
			if err != nil {
				return err
			}

			if listing.SellerID != identity.ID && identity.Role != model.RoleAdmin {
				return apperr.Forbidden("Forbidden: insufficient permission")
			}
			return next(c)
		}
	}
}
