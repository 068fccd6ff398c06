package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/family-spots/internal/config"
	"github.com/family-spots/internal/delivery/http/handler"
	"github.com/family-spots/internal/delivery/http/middleware"
	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/pkg/utils"
)

// Server - Fiber based HTTP server
type Server struct {
	app       *fiber.App
	config    *config.Config
	logger    *zap.Logger
	snapshots repository.SnapshotStore

	// Handlers
	spotHandler     *handler.SpotHandler
	favoriteHandler *handler.FavoriteHandler
	adminHandler    *handler.AdminHandler
	statsHandler    *handler.StatsHandler
}

// NewServer - creates a new HTTP server
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	snapshots repository.SnapshotStore,
	spotHandler *handler.SpotHandler,
	favoriteHandler *handler.FavoriteHandler,
	adminHandler *handler.AdminHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Family Spots API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		snapshots:       snapshots,
		spotHandler:     spotHandler,
		favoriteHandler: favoriteHandler,
		adminHandler:    adminHandler,
		statsHandler:    statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - middleware configuration
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - route configuration
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		snapshotLoaded := false
		var snapshotVersion int64
		if snap := s.snapshots.Current(); snap != nil {
			snapshotLoaded = true
			snapshotVersion = snap.Version
		}
		return utils.SendSuccess(c, fiber.Map{
			"status":           "healthy",
			"snapshot_loaded":  snapshotLoaded,
			"snapshot_version": snapshotVersion,
			"time":             time.Now(),
		}, nil)
	})

	// Spot routes
	api.Get("/spots", s.spotHandler.Search)
	api.Get("/spots/:id", s.spotHandler.GetSpot)

	// Favorite routes
	api.Get("/favorites", s.favoriteHandler.List)
	api.Post("/favorites", s.favoriteHandler.Add)
	api.Delete("/favorites/:spot_id", s.favoriteHandler.Remove)

	// Admin write path
	admin := api.Group("/admin")
	admin.Post("/spots", s.adminHandler.UpsertSpot)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

// Start - starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful HTTP server shutdown
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for handler tests
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - fallback error handler for errors escaping handlers
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
