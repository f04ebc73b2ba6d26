package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rateshop/internal/config"
	"rateshop/internal/db"
	"rateshop/internal/engine"
	"rateshop/internal/logging"
	"rateshop/internal/metrics"
	"rateshop/internal/server"
	"rateshop/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	backend := strings.ToLower(strings.TrimSpace(cfg.RateBackend))
	if backend == "" {
		backend = "memory"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var src store.Source
	if backend == "postgres" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect db", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("database ping failed", zap.Error(err))
		}
		src = store.NewByName(backend, pool)
	} else {
		src = store.NewByName(backend, nil)
	}

	// Optional read-through zone cache; zone data is static enough that a
	// short TTL covers admin updates.
	var zones engine.ZoneSource = src
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, zone cache disabled", zap.Error(err))
		} else {
			zones = store.NewCachedZones(src, client, cfg.ZoneCacheTTL, logger)
		}
	}

	counters := metrics.NewCounters()
	eng := engine.New(zones, src, src, counters)
	handler := server.New(eng, counters, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("api listening", zap.String("port", cfg.Port), zap.String("backend", backend))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
