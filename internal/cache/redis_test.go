package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a live server; set REDIS_ADDR to run them.
func testCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client, err := Connect(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, "fabhomes-test-"+uuid.NewString())
}

type counts struct {
	Total int `json:"total"`
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	var got counts
	hit, err := c.GetJSON(ctx, "analytics", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, "analytics", counts{Total: 7}, time.Minute))
	hit, err = c.GetJSON(ctx, "analytics", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got.Total)
}

func TestRedisCacheExpires(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "short", counts{Total: 1}, 50*time.Millisecond))
	assert.Eventually(t, func() bool {
		var got counts
		hit, err := c.GetJSON(ctx, "short", &got)
		return err == nil && !hit
	}, 2*time.Second, 25*time.Millisecond)
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "fabhomes:analytics", NewRedisCache(nil, "fabhomes").key("analytics"))
	assert.Equal(t, "analytics", NewRedisCache(nil, "").key("analytics"))
}
