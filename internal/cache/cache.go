package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-safe JSON cache over Redis. Every failure mode (redis
// unreachable, undecodable payload, nil client) behaves like a miss so the
// marketplace keeps serving from MySQL.
type Client struct {
	rdb *redis.Client
}

// New creates a Redis-backed cache client.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// GetJSON loads the value at key into dst, reporting whether a usable cached
// value was present.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON marshals v and stores it under key with a TTL, ignoring errors.
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, payload, ttl)
}

// Delete removes a key, ignoring errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key)
}
