package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestCacheGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	product := &domain.Product{ID: "p1", Name: "Bed Guard", Price: "300 ج.م", OnSale: false}
	data, _ := json.Marshal(product)
	mr.Set(cacheKey("p1"), string(data))

	result, err := cache.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", result.ID)
	assert.Equal(t, "300 ج.م", result.Price)
}

func TestCacheGet_Miss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestCacheGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("p1"), "{not json")

	_, err := cache.Get(context.Background(), "p1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestCacheSetThenGet(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	product := &domain.Product{ID: "p2", Name: "Pillow", Price: "120", SalePrice: "99", OnSale: true}
	require.NoError(t, cache.Set(context.Background(), product))
	assert.True(t, mr.Exists(cacheKey("p2")))

	result, err := cache.Get(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "99", result.SalePrice)
	assert.True(t, result.OnSale)
}

func TestCacheDelete(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	product := &domain.Product{ID: "p1", Name: "Bed Guard", Price: "300"}
	require.NoError(t, cache.Set(context.Background(), product))
	require.NoError(t, cache.Delete(context.Background(), "p1"))

	assert.False(t, mr.Exists(cacheKey("p1")))
}
