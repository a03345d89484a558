package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/cache"
)

// Requires Redis on localhost:6379; skipped otherwise.
const testRedisAddr = "localhost:6379"

func setup(t *testing.T) *cache.Cache {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	c, err := cache.Dial(ctx, testRedisAddr, "shopfront-test:", time.Minute)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	t.Cleanup(func() {
		_ = c.Flush(context.Background())
		_ = c.Close()
	})
	require.NoError(t, c.Flush(ctx))
	return c
}

func TestKey_Stable(t *testing.T) {
	assert.Equal(t, cache.Key("a", "b"), cache.Key("a", "b"))
	assert.NotEqual(t, cache.Key("ab", ""), cache.Key("a", "b"))
}

func TestCache_SetGet(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	type page struct {
		IDs   []string `json:"ids"`
		Total int      `json:"total"`
	}
	var got page
	found, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k1", page{IDs: []string{"a", "b"}, Total: 2}))
	found, err = c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, page{IDs: []string{"a", "b"}, Total: 2}, got)

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, uint64(1), s.Sets)
	assert.InDelta(t, 50.0, s.HitRate, 0.001)

	require.NoError(t, c.Flush(ctx))
	found, err = c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
