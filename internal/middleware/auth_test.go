package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"campusmarket/internal/apperr"
	"campusmarket/internal/auth"
	"campusmarket/internal/model"
)

const testSecret = "test-secret"

func newAuthContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate(t *testing.T) {
	jwtService := auth.NewJWTService(testSecret, time.Hour)

	tests := []struct {
		name          string
		authorization func(t *testing.T) string
		wantIdentity  *Identity
	}{
		{
			name:          "missing header",
			authorization: func(t *testing.T) string { return "" },
		},
		{
			name:          "garbage token",
			authorization: func(t *testing.T) string { return "Bearer not.a.token" },
		},
		{
			name: "token signed with another secret",
			authorization: func(t *testing.T) string {
				other := auth.NewJWTService("other-secret", time.Hour)
				token, err := other.GenerateAccessToken(42, "USER")
				assert.NoError(t, err)
				return "Bearer " + token
			},
		},
		{
			name: "expired token",
			authorization: func(t *testing.T) string {
				expired := auth.NewJWTService(testSecret, -time.Hour)
				token, err := expired.GenerateAccessToken(42, "USER")
				assert.NoError(t, err)
				return "Bearer " + token
			},
		},
		{
			name: "valid token",
			authorization: func(t *testing.T) string {
				token, err := jwtService.GenerateAccessToken(42, "ADMIN")
				assert.NoError(t, err)
				return "Bearer " + token
			},
			wantIdentity: &Identity{ID: 42, Role: model.RoleAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAuthContext(t, tt.authorization(t))

			var nextCalled bool
			handler := Authenticate(testSecret)(func(c echo.Context) error {
				nextCalled = true
				return c.NoContent(http.StatusOK)
			})
			err := handler(c)

			if tt.wantIdentity == nil {
				assert.False(t, nextCalled)
				appErr := apperr.FromError(err)
				assert.Equal(t, apperr.KindUnauthorized, appErr.Kind)
				assert.Equal(t, "Not authenticated", appErr.Message)
			} else {
				assert.NoError(t, err)
				assert.True(t, nextCalled)
				identity, ok := IdentityFrom(c)
				assert.True(t, ok)
				assert.Equal(t, *tt.wantIdentity, identity)
			}
		})
	}
}
