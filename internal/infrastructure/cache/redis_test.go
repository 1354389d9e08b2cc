package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/domain"
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-redis-url", "pantrychef:")

	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	cache := NewRedisCacheWithClient(client, "pantrychef:")
	defer cache.Close()
	ctx := context.Background()

	_, err := cache.Get(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	err = cache.Set(ctx, "key", "value", time.Minute)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	_, err = cache.Exists(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

// Runs only when PANTRYCHEF_TEST_REDIS_URL points at a disposable server.
func TestRedisCache_Integration(t *testing.T) {
	url := os.Getenv("PANTRYCHEF_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PANTRYCHEF_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	cache, err := NewRedisCache(ctx, url, "pantrychef-test:")
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "prompt", "answer", time.Minute))

	got, err := cache.Get(ctx, "prompt")
	require.NoError(t, err)
	assert.Equal(t, "answer", got)

	exists, err := cache.Exists(ctx, "prompt")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "prompt"))
	exists, err = cache.Exists(ctx, "prompt")
	require.NoError(t, err)
	assert.False(t, exists)
}
