package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/catalog"
	"github.com/petsure/petsure/internal/config"
	"github.com/petsure/petsure/internal/database"
	"github.com/petsure/petsure/internal/docs"
	"github.com/petsure/petsure/internal/handlers"
	"github.com/petsure/petsure/internal/middleware"
	"github.com/petsure/petsure/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	catalog  *catalog.Catalog
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	// Reference catalogs load once at startup; the request path only ever
	// reads the immutable maps.
	cat, err := catalog.Load(cfg.Catalog.Dir, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}
	app.catalog = cat

	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	services, err := services.New(cfg, app.logger, db, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = services

	app.handlers = handlers.New(app.logger, services)

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		return err
	}

	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	// Health check endpoint (no auth required)
	router.GET("/health", a.handlers.Health.Check)

	// Prometheus metrics endpoint (no auth required)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Token exchange (no auth required)
	router.POST("/auth/token", a.handlers.Auth.Token)

	// API documentation (no auth required)
	docs.RegisterRoutes(router)

	// API routes
	api := router.Group("/api/v1")
	{
		api.Use(middleware.Auth(a.services.Auth, a.logger))

		// Profile routes
		profiles := api.Group("/profiles")
		{
			profiles.GET("", a.handlers.Profile.List)
			profiles.GET("/:profileId/preferences", a.handlers.Recommendation.GetPreferences)
			profiles.POST("/:profileId/recommendations", a.handlers.Recommendation.Create)
			profiles.GET("/:profileId/comparison", a.handlers.Recommendation.Compare)
			profiles.POST("/:profileId/choices", a.handlers.Profile.CreateChoice)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", a.handlers.Product.List)
			products.GET("/:productId", a.handlers.Product.Get)
		}
	}

	a.router = router
}
