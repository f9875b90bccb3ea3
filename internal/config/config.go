package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	MongoURI            string
	MongoDBName         string
	MongoConnectTimeout time.Duration
	MongoMaxPoolSize    uint64
	MongoMinPoolSize    uint64

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string
	KafkaTopic   string

	// Shipping threshold rule: free at or above the threshold of the
	// items total, flat fee otherwise.
	FreeShippingThreshold float64
	ShippingFee           float64

	EventTimeout time.Duration
}

// Load reads configuration from the environment, with an optional
// .env file for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	viper.AutomaticEnv()
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB_NAME", "swiftcart")
	viper.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	viper.SetDefault("MONGO_MAX_POOL_SIZE", 100)
	viper.SetDefault("MONGO_MIN_POOL_SIZE", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
	viper.SetDefault("KAFKA_TOPIC", "storefront-events")
	viper.SetDefault("FREE_SHIPPING_THRESHOLD", 300.0)
	viper.SetDefault("SHIPPING_FEE", 50.0)
	viper.SetDefault("EVENT_TIMEOUT", "5s")

	return &Config{
		HTTPPort:              viper.GetString("HTTP_PORT"),
		RequestTimeout:        viper.GetDuration("REQUEST_TIMEOUT"),
		ShutdownTimeout:       viper.GetDuration("SHUTDOWN_TIMEOUT"),
		MongoURI:              viper.GetString("MONGO_URI"),
		MongoDBName:           viper.GetString("MONGO_DB_NAME"),
		MongoConnectTimeout:   viper.GetDuration("MONGO_CONNECT_TIMEOUT"),
		MongoMaxPoolSize:      viper.GetUint64("MONGO_MAX_POOL_SIZE"),
		MongoMinPoolSize:      viper.GetUint64("MONGO_MIN_POOL_SIZE"),
		RedisAddr:             viper.GetString("REDIS_ADDR"),
		RedisPassword:         viper.GetString("REDIS_PASSWORD"),
		KafkaBrokers:          viper.GetStringSlice("KAFKA_BROKERS"),
		KafkaTopic:            viper.GetString("KAFKA_TOPIC"),
		FreeShippingThreshold: viper.GetFloat64("FREE_SHIPPING_THRESHOLD"),
		ShippingFee:           viper.GetFloat64("SHIPPING_FEE"),
		EventTimeout:          viper.GetDuration("EVENT_TIMEOUT"),
	}
}

// SetupLogger installs the process-wide structured logger.
func SetupLogger() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(handler))
}
