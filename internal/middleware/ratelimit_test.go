package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"campusmarket/internal/apperr"
)

func rateLimitedRequest(t *testing.T, limiter *LoginRateLimiter, ip string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := limiter.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestLoginRateLimiter(t *testing.T) {
	t.Run("rejects the caller over budget", func(t *testing.T) {
		limiter := NewLoginRateLimiter(3)

		for i := 0; i < 3; i++ {
			assert.NoError(t, rateLimitedRequest(t, limiter, "10.0.0.1"))
		}

		err := rateLimitedRequest(t, limiter, "10.0.0.1")
		appErr := apperr.FromError(err)
		assert.Equal(t, apperr.KindRateLimited, appErr.Kind)
		assert.Equal(t, "Too many login attempts. Try again later.", appErr.Message)
	})

	t.Run("budgets are per caller", func(t *testing.T) {
		limiter := NewLoginRateLimiter(1)

		assert.NoError(t, rateLimitedRequest(t, limiter, "10.0.0.1"))
		assert.Error(t, rateLimitedRequest(t, limiter, "10.0.0.1"))
		assert.NoError(t, rateLimitedRequest(t, limiter, "10.0.0.2"))
	})

	t.Run("idle buckets are evicted, active ones survive", func(t *testing.T) {
		limiter := NewLoginRateLimiter(5)

		assert.NoError(t, rateLimitedRequest(t, limiter, "10.0.0.1"))
		assert.NoError(t, rateLimitedRequest(t, limiter, "10.0.0.2"))
		assert.NoError(t, rateLimitedRequest(t, limiter, "10.0.0.3"))

		// Age one caller past the TTL and make the next request sweep.
		limiter.mu.Lock()
		limiter.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * visitorTTL)
		limiter.lastSweep = time.Now().Add(-2 * visitorTTL)
		limiter.mu.Unlock()

		assert.NoError(t, rateLimitedRequest(t, limiter, "10.0.0.2"))

		limiter.mu.Lock()
		_, stale := limiter.visitors["10.0.0.1"]
		_, active := limiter.visitors["10.0.0.2"]
		limiter.mu.Unlock()
		assert.False(t, stale)
		assert.True(t, active)
	})
}
