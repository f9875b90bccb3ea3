package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/mu7ammad-3li/swiftcart/internal/catalog"
	"github.com/mu7ammad-3li/swiftcart/internal/config"
	"github.com/mu7ammad-3li/swiftcart/internal/customer"
	"github.com/mu7ammad-3li/swiftcart/internal/events"
	"github.com/mu7ammad-3li/swiftcart/internal/inventory"
	"github.com/mu7ammad-3li/swiftcart/internal/order"
	"github.com/mu7ammad-3li/swiftcart/internal/storage"
	transport "github.com/mu7ammad-3li/swiftcart/internal/transport/http"
)

func main() {
	config.SetupLogger()
	cfg := config.Load()

	ctx := context.Background()
	mongoDB, err := storage.ConnectMongoDB(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(ctx)
	slog.Info("connected to MongoDB", "uri", cfg.MongoURI, "db", cfg.MongoDBName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to Redis", "addr", cfg.RedisAddr)

	kafkaSink := events.NewKafkaSink(cfg.KafkaTopic, cfg.KafkaBrokers...)
	defer kafkaSink.Close()
	dispatcher := events.NewDispatcher(cfg.EventTimeout, kafkaSink, events.LogSink{})

	catalogService := catalog.NewService(
		catalog.NewMongoRepository(mongoDB),
		catalog.NewRedisCache(redisClient),
	)
	resolver := customer.NewResolver(customer.NewMongoRepository(mongoDB))
	ledger := inventory.NewMongoLedger(mongoDB)
	orderService := order.NewService(
		catalogService,
		resolver,
		ledger,
		order.NewMongoRepository(mongoDB),
		dispatcher,
		order.ShippingPolicy{
			FreeThreshold: cfg.FreeShippingThreshold,
			Fee:           cfg.ShippingFee,
		},
	)

	orderHandler := transport.NewOrderHandler(orderService, cfg.RequestTimeout)
	inventoryHandler := transport.NewInventoryHandler(ledger, cfg.RequestTimeout)
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: transport.NewRouter(orderHandler, inventoryHandler),
	}

	go func() {
		slog.Info("storefront listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down storefront")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	dispatcher.Wait()
	slog.Info("storefront stopped")
}
