package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// A nil client must behave like a permanent miss so callers never need a
// redis-is-configured branch.
func TestClient_NilSafety(t *testing.T) {
	ctx := context.Background()
	var c *Client

	var dst struct{ ID uint }
	assert.False(t, c.GetJSON(ctx, "listing:1", &dst))

	assert.NotPanics(t, func() {
		c.SetJSON(ctx, "listing:1", map[string]uint{"id": 1}, time.Minute)
		c.Delete(ctx, "listing:1")
	})
}
