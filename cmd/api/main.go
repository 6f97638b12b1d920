package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealer-catalog-sync/config"
	httpHandler "dealer-catalog-sync/internal/adapter/http/handler"
	pgStorage "dealer-catalog-sync/internal/adapter/storage/postgres"
	redisStorage "dealer-catalog-sync/internal/adapter/storage/redis"
	"dealer-catalog-sync/internal/core/ports"
	"dealer-catalog-sync/internal/service"
	"dealer-catalog-sync/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Strs("process_types", cfg.Sync.ProcessTypes).
		Msg("Starting Dealer Catalog Sync")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client (lock store)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	syncRunRepo := pgStorage.NewSyncRunRepo(pool)
	dealerGroupRepo := pgStorage.NewDealerGroupRepo(pool)
	catalogRepo := pgStorage.NewCatalogRepo(pool)

	// Initialize the distributed lock
	lock := redisStorage.NewLock(rdb, log)

	// Initialize core services
	deliveryClient := service.NewDeliveryClient(&http.Client{Timeout: cfg.Sync.DeliveryTimeout}, log)
	payloadBuilder := service.NewPayloadBuilder(catalogRepo, log)
	syncSvc := service.NewSyncService(
		cfg.Sync,
		syncRunRepo,
		dealerGroupRepo,
		catalogRepo,
		lock,
		deliveryClient,
		payloadBuilder,
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SyncSvc:        syncSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop in-flight sync runs: they persist a FAILED terminal state and
	// release their locks before the process exits.
	syncSvc.Shutdown()

	log.Info().Msg("Server exited")
}
