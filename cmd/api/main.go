package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"jobsight/internal/adapters/csvfile"
	"jobsight/internal/adapters/http"
	natsadapter "jobsight/internal/adapters/nats"
	"jobsight/internal/adapters/valkey"
	"jobsight/internal/core/ports"
	"jobsight/internal/core/usecases"
	"jobsight/internal/pkg/config"
	"jobsight/internal/pkg/logging"
	"jobsight/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("jobsight-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.CollectorAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Dataset — the whole service runs off this one table, so a load
	// failure is fatal.
	store := csvfile.New(cfg.Dataset.Path)
	listings, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("load dataset %s: %v", cfg.Dataset.Path, err)
	}
	slog.Info("dataset loaded", "path", cfg.Dataset.Path, "rows", len(listings))

	// Cache (optional)
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable, snapshots will be recomputed", "error", err)
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	// NATS (optional)
	var eventsSvc ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, dashboard events disabled", "error", err)
	} else {
		eventsSvc = pub
		defer pub.Close()
	}

	// Raw NATS connection for the WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	dashboard := usecases.NewDashboardService(listings, cacheSvc, eventsSvc, cfg.Cache.TTLSeconds)

	if eventsSvc != nil {
		if err := eventsSvc.PublishDatasetLoaded(ctx, len(listings)); err != nil {
			slog.Warn("dataset event publish failed", "error", err)
		}
	}

	deps := &http.Dependencies{
		Dashboard: dashboard,
		NATS:      natsConn,
		Cache:     cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Jobsight API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
