package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/megambeast/fincompare/internal/api"
	"github.com/megambeast/fincompare/internal/catalog"
	"github.com/megambeast/fincompare/internal/cleanup"
	"github.com/megambeast/fincompare/internal/collab"
	"github.com/megambeast/fincompare/internal/compare"
	"github.com/megambeast/fincompare/internal/config"
	"github.com/megambeast/fincompare/internal/experiment"
	"github.com/megambeast/fincompare/internal/recommend"
	"github.com/megambeast/fincompare/internal/storage"
	"github.com/megambeast/fincompare/internal/track"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting fincompare",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Run database migrations
	slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
	if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize database repository
	repo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		slog.Error("failed to create database repository", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected successfully")

	// Initialize session store
	store, err := storage.NewRedisStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Sessions.TTL)
	if err != nil {
		slog.Error("failed to create redis store", "error", err)
		os.Exit(1)
	}
	slog.Info("redis connected successfully")

	// Load product catalog
	loader := catalog.NewLoader()
	if err := loader.LoadFromDir(cfg.Catalog.Dir); err != nil {
		slog.Error("failed to load catalog", "dir", cfg.Catalog.Dir, "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "products", loader.Count())

	// Initialize collaborator registry
	registry := collab.NewRegistry()

	recommenderClient := collab.NewRecommendationClient(cfg.Recommender.BaseURL,
		collab.WithTimeout(cfg.Recommender.Timeout))
	registry.Register("recommender", recommenderClient)

	trackingClient := collab.NewTrackingClient(cfg.Tracking.BaseURL,
		collab.WithTimeout(cfg.Tracking.Timeout))
	registry.Register("tracking", trackingClient)

	registry.Register("postgres", collab.NewPinger("postgres", repo.Ping))
	registry.Register("redis", collab.NewPinger("redis", store.Ping))

	// Initialize domain services
	manager := compare.NewManager(loader, store, cfg.Sessions.TTL)
	recommender := recommend.NewService(loader, recommenderClient,
		recommend.WithCache(store, cfg.Recommender.CacheTTL))
	tracker := track.NewTracker(repo, trackingClient, cfg.Tracking.Timeout)

	// Initialize cleanup worker
	cleaner := cleanup.NewCleaner(store, cfg.Sessions.CleanupInterval)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, loader, manager, recommender, tracker,
		experiment.UUIDIdentity{}, registry, repo)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := store.Close(); err != nil {
		slog.Error("redis close error", "error", err)
	}
	if err := repo.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("fincompare stopped")
}
