package middleware

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/apperr"
	"campusmarket/internal/model"
)

// AuthorizeRoles gates a route to the given roles. Must run after
// Authenticate.
func AuthorizeRoles(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return apperr.Unauthorized("Not authenticated")
			}
			for _, role := range allowed {
				if identity.Role == role {
					return next(c)
				}
			}
			return apperr.Forbidden("Forbidden: insufficient permission")
		}
	}
}
