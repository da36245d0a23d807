package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"skillviz-utils/internal/api/middleware"
	"skillviz-utils/internal/api/routes"
	"skillviz-utils/internal/cache"
	"skillviz-utils/internal/config"
	"skillviz-utils/internal/logging"
	"skillviz-utils/internal/processor"
	"skillviz-utils/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger := logging.GetGlobalLogger()
	logger.Info("Starting SkillViz Analytics", map[string]interface{}{
		"ingest_schema": cfg.Ingest.Schema,
	})

	// Core components: the store owns all records for the process lifetime
	categoryStore := store.New()
	proc := processor.New(cfg)

	// Optional Redis-backed analytics cache
	analyticsCache := cache.New(cfg)
	if analyticsCache.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		if err := analyticsCache.Ping(pingCtx); err != nil {
			logger.Warn("Analytics cache unreachable, continuing without it", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			logger.Info("Analytics cache connected")
		}
		cancel()
	}

	// Per-client ingest rate limiter
	ingestLimiter := middleware.NewIngestLimiter(cfg)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, proc, categoryStore, analyticsCache, ingestLimiter)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ingestLimiter.Stop()

		if err := analyticsCache.Close(); err != nil {
			logger.Error("Error closing analytics cache", map[string]interface{}{"error": err.Error()})
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
		logging.CloseLogging()
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
