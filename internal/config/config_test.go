package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "swiftcart", cfg.MongoDBName)
	assert.Equal(t, 10*time.Second, cfg.MongoConnectTimeout)
	assert.Equal(t, uint64(100), cfg.MongoMaxPoolSize)
	assert.Equal(t, uint64(10), cfg.MongoMinPoolSize)
	assert.Equal(t, 300.0, cfg.FreeShippingThreshold)
	assert.Equal(t, 50.0, cfg.ShippingFee)
	assert.Equal(t, 5*time.Second, cfg.EventTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MONGO_MAX_POOL_SIZE", "25")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3s")
	t.Setenv("SHIPPING_FEE", "65")

	cfg := Load()

	assert.Equal(t, uint64(25), cfg.MongoMaxPoolSize)
	assert.Equal(t, 3*time.Second, cfg.MongoConnectTimeout)
	assert.Equal(t, 65.0, cfg.ShippingFee)
}
