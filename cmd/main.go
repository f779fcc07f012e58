package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"catalog/internal/bootstrap"
	"catalog/internal/cache"
	"catalog/internal/events"
	"catalog/internal/search"
	"catalog/internal/telemetry"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	// Use JSON traced logging
	baseHandler := slog.NewJSONHandler(os.Stdout, nil)
	logger := slog.New(telemetry.NewTraceHandler(baseHandler))
	slog.SetDefault(logger)

	if collectorURL := os.Getenv("OTEL_COLLECTOR_URL"); collectorURL != "" {
		shutdown, err := telemetry.InitTracer("catalog-api", collectorURL)
		if err != nil {
			slog.Error("Failed to initialize tracer", "error", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	config := config{
		addr:     ":" + getenv("API_PORT", "8000"),
		frontend: os.Getenv("DOMAIN_NAME"),
	}

	engineHost := getenv("TYPESENSE_HOST", "localhost")
	enginePort := getenv("TYPESENSE_PORT", "8108")
	engineKey := getenv("TYPESENSE_API_KEY", "xyz")

	slog.Info("Connecting to search engine", "host", engineHost, "port", enginePort)
	engine := search.NewTypesenseEngine(engineHost, enginePort, engineKey)

	// Optional request-replay protection; the service runs without Redis.
	var rdb *cache.RedisClient
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		poolSize, _ := strconv.Atoi(os.Getenv("REDIS_POOL_SIZE"))
		minIdleConns, _ := strconv.Atoi(os.Getenv("REDIS_MIN_IDLE_CONNS"))

		slog.Info("Connecting to Redis cache", "addr", addr)
		client, err := cache.NewRedisClient(cache.Config{
			Addr:         addr,
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           0,
			PoolSize:     poolSize,
			MinIdleConns: minIdleConns,
		})
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		rdb = client
	}

	// Optional event bus; without NATS configured, publishes are no-ops.
	var eventBus events.Bus = events.NoopBus{}
	if endpoint := os.Getenv("NATS_ENDPOINT"); endpoint != "" {
		slog.Info("Connecting to event bus", "endpoint", endpoint)
		bus, err := events.NewNATSBus(endpoint, logger)
		if err != nil {
			slog.Error("Failed to initialize event bus", "error", err)
			os.Exit(1)
		}
		eventBus = bus
	}

	// Bootstrap runs to completion before the router accepts traffic.
	// Failure here is non-fatal: the service starts degraded.
	connector := bootstrap.New(engine, logger, bootstrap.DefaultConfig())
	connector.Run(context.Background())

	app := &application{
		config:   config,
		engine:   engine,
		cache:    rdb,
		eventBus: eventBus,
		logger:   logger,
	}

	if err := app.run(app.mount()); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
