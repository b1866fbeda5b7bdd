package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	token, err := service.GenerateAccessToken(42, "ADMIN")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_ValidateToken(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour)
		token, err := other.GenerateAccessToken(42, "USER")
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService("test-secret", -time.Hour)
		token, err := expired.GenerateAccessToken(42, "USER")
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		claims, err := service.ValidateToken("not.a.token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
