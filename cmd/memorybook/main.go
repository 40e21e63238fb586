// Package main is the entry point for the memory book API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memorybook/internal/cache"
	"memorybook/internal/catalog"
	"memorybook/internal/config"
	"memorybook/internal/database"
	"memorybook/internal/export"
	"memorybook/internal/handlers"
	"memorybook/internal/render"
	"memorybook/internal/router"
	"memorybook/internal/storage"
	"memorybook/internal/store"
)

func main() {
	// Structured logger — text output, debug level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for rendered-book caching.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	bookCache := cache.NewBookCache(valkeyClient, cache.DefaultBookTTL)

	// Connect to S3-compatible object storage (optional — photo uploads
	// are disabled without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured — photo uploads disabled")
	}

	// The preview and export adapters resolve photo keys against the
	// storage base URL. Without storage, photos render as placeholders.
	imageBase := ""
	if storageClient != nil {
		imageBase = storageClient.BaseURL()
	}
	renderer, err := render.New(imageBase)
	if err != nil {
		slog.Error("failed to initialize renderer", "error", err)
		os.Exit(1)
	}
	exporter, err := export.New(renderer)
	if err != nil {
		slog.Error("failed to initialize exporter", "error", err)
		os.Exit(1)
	}

	// The layout catalog is static and immutable after construction.
	cat := catalog.New()

	// Initialize data stores.
	projectStore := store.NewProjectStore(db)
	contributionStore := store.NewContributionStore(db)
	pageStore := store.NewPageStore(db)

	api := handlers.New(projectStore, contributionStore, pageStore, cat, renderer, exporter, storageClient, bookCache)

	r, uploadLimiter := router.New(api)
	defer uploadLimiter.Stop()

	// Create the HTTP server with sensible timeouts. Export rendering
	// of large books can take a while, hence the generous WriteTimeout.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
