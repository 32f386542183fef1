package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekeliveli/stoktakip/pkg/config"
)

func getRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := NewClient(context.Background(), config.RedisConfig{Addr: addr, DB: 15})
	if err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func resetKeys(t *testing.T, client *redis.Client, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		client.Del(context.Background(), stockKey(id), versionKey(id))
	}
}

func TestStockKey(t *testing.T) {
	assert.Equal(t, "stock:{42}", stockKey(42))
	assert.Equal(t, "stock:ver:{42}", versionKey(42))
}

func TestStockCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	client := getRedisClient(t)
	cache := NewStockCache(client, time.Minute, nil)
	resetKeys(t, client, 9001)

	_, ok, err := cache.Get(ctx, 9001)
	require.NoError(t, err)
	assert.False(t, ok)

	version, err := cache.Version(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	stored, err := cache.SetIfVersion(ctx, 9001, version, 130)
	require.NoError(t, err)
	assert.True(t, stored)

	stock, ok, err := cache.Get(ctx, 9001)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(130), stock)

	ttl, err := client.PTTL(ctx, stockKey(9001)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, cache.Invalidate(ctx, 9001))
	_, ok, err = cache.Get(ctx, 9001)
	require.NoError(t, err)
	assert.False(t, ok)

	version, err = cache.Version(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

// Un lector que tomó la versión antes de una escritura no puede reinstalar el stock viejo.
func TestStockCache_SetIfVersionRechazaVersionVieja(t *testing.T) {
	ctx := context.Background()
	client := getRedisClient(t)
	cache := NewStockCache(client, time.Minute, nil)
	resetKeys(t, client, 9003)

	before, err := cache.Version(ctx, 9003)
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(ctx, 9003))

	stored, err := cache.SetIfVersion(ctx, 9003, before, 100)
	require.NoError(t, err)
	assert.False(t, stored)
	_, ok, err := cache.Get(ctx, 9003)
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := cache.Version(ctx, 9003)
	require.NoError(t, err)
	stored, err = cache.SetIfVersion(ctx, 9003, after, 70)
	require.NoError(t, err)
	assert.True(t, stored)

	stock, ok, err := cache.Get(ctx, 9003)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(70), stock)
}

func TestStockCache_Expira(t *testing.T) {
	ctx := context.Background()
	client := getRedisClient(t)
	cache := NewStockCache(client, 50*time.Millisecond, nil)
	resetKeys(t, client, 9002)

	stored, err := cache.SetIfVersion(ctx, 9002, 0, 7)
	require.NoError(t, err)
	require.True(t, stored)
	assert.Eventually(t, func() bool {
		_, ok, err := cache.Get(ctx, 9002)
		return err == nil && !ok
	}, 2*time.Second, 20*time.Millisecond)
}
