package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bventy/platform/internal/config"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	cache := setupTestCache(t)

	expected := testStruct{Name: "Asha", Age: 30}
	err := cache.Set(ctx, "user:1", expected, time.Minute)
	require.NoError(t, err)

	var actual testStruct
	found, err := cache.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGet_Miss(t *testing.T) {
	cache := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := setupTestCache(t)

	require.NoError(t, cache.Set(ctx, "k", testStruct{Name: "x"}, time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "k"))

	var out testStruct
	found, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetDel_SingleUse(t *testing.T) {
	ctx := context.Background()
	cache := setupTestCache(t)

	require.NoError(t, cache.Set(ctx, "bridge:code:abc", "token-value", time.Minute))

	var token string
	found, err := cache.GetDel(ctx, "bridge:code:abc", &token)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "token-value", token)

	// second redemption of the same code must miss
	found, err = cache.GetDel(ctx, "bridge:code:abc", &token)
	require.NoError(t, err)
	assert.False(t, found)
}
