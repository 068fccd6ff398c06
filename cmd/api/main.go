package main

// @title Family Spots API
// @version 1.0.0
// @description Geospatial search service for family-outing spots. Provides ranked
// @description radius search with cost, age, tag and free-text filters, spot details,
// @description per-user favorites and an asynchronous admin write path. Reads are
// @description served from an immutable in-memory snapshot that is swapped atomically
// @description whenever the dataset changes.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/family-spots/docs"
	"github.com/family-spots/internal/config"
	httpDelivery "github.com/family-spots/internal/delivery/http"
	"github.com/family-spots/internal/delivery/http/handler"
	"github.com/family-spots/internal/pkg/logger"
	"github.com/family-spots/internal/repository/cache"
	"github.com/family-spots/internal/repository/memory"
	"github.com/family-spots/internal/repository/postgres"
	redisRepo "github.com/family-spots/internal/repository/redis"
	"github.com/family-spots/internal/usecase"
	"github.com/family-spots/internal/worker"
	"github.com/family-spots/internal/worker/spots"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Family Spots API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	spotRepo := postgres.NewSpotRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	snapshots := memory.NewSnapshotStore(log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	searchUC := usecase.NewSearchUseCase(snapshots, cacheRepo, log, cfg.Cache.SearchCacheTTL)
	spotUC := usecase.NewSpotUseCase(snapshots, streamRepo, log)
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, spotRepo, log)
	statsUC := usecase.NewStatsUseCase(snapshots, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	spotHandler := handler.NewSpotHandler(searchUC, spotUC, log)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUC, log)
	adminHandler := handler.NewAdminHandler(spotUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		snapshots,
		spotHandler,
		favoriteHandler,
		adminHandler,
		statsHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start the snapshot worker: initial dataset load, periodic refresh
	// and event-driven refresh on spot changes
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	snapshotWorker := spots.NewSnapshotWorker(
		spotRepo,
		snapshots,
		cacheRepo,
		streamRepo,
		cfg.Snapshot.RefreshInterval,
		log,
	)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(snapshotWorker)

	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start snapshot worker", zap.Error(err))
	}

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	workerCancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
