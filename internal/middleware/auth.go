package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"campusmarket/internal/apperr"
	"campusmarket/internal/auth"
	"campusmarket/internal/model"
)

const identityKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID   uint
	Role model.Role
}

// Authenticate verifies the bearer token and attaches the caller identity.
// Every failure mode (missing header, malformed token, bad signature, expiry)
// collapses into the same 401 so callers learn nothing about the token.
func Authenticate(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperr.Unauthorized("Not authenticated")
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return
			}
			c.Set(identityKey, Identity{ID: claims.UserID, Role: model.Role(claims.Role)})
		},
	})
}

// IdentityFrom returns the authenticated identity set by Authenticate.
func IdentityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}
