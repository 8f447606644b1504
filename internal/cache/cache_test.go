package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10)
	defer cache.Close()

	err := cache.Set(ctx, "key1", []byte("value1"), time.Hour)
	require.NoError(t, err)

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), value)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10)
	defer cache.Close()

	value, err := cache.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10)
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "key1", []byte("value1"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryCache_NoExpiration(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10)
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "key1", []byte("value1"), 0))

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), value)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10)
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "key1", []byte("value1"), time.Hour))
	require.NoError(t, cache.Delete(ctx, "key1"))

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(3)
	defer cache.Close()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("key%d", i)
		require.NoError(t, cache.Set(ctx, key, []byte(key), time.Hour))
	}

	// Touch key0 so key1 becomes the eviction candidate
	_, err := cache.Get(ctx, "key0")
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "key3", []byte("key3"), time.Hour))

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Nil(t, value, "least-recently-used entry should be evicted")

	value, err = cache.Get(ctx, "key0")
	require.NoError(t, err)
	assert.Equal(t, []byte("key0"), value)
}

func TestMemoryCache_ValueCopied(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10)
	defer cache.Close()

	original := []byte("value1")
	require.NoError(t, cache.Set(ctx, "key1", original, time.Hour))
	original[0] = 'X'

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), value)

	// Mutating the returned slice must not affect the cached copy
	value[0] = 'Y'
	again, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), again)
}

func TestMemoryCache_Health(t *testing.T) {
	cache := NewMemoryCache(10)
	defer cache.Close()
	assert.NoError(t, cache.Health(context.Background()))
}

func TestCacheError(t *testing.T) {
	inner := assert.AnError
	err := &CacheError{Operation: "get", Key: "k", Err: inner}
	assert.Contains(t, err.Error(), "cache get failed for key 'k'")
	assert.ErrorIs(t, err, inner)
}
