package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/internal/config"
	"github.com/velosport/recsvc/internal/engine"
	"github.com/velosport/recsvc/internal/handlers"
	"github.com/velosport/recsvc/internal/middleware"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	engine   *engine.Engine
	handlers *handlers.Handlers
	router   *gin.Engine
	cache    *redis.Client
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	// Engine state: explicitly owned stores injected at construction,
	// all scoped to this process instance.
	products := engine.NewProductStore()
	profiles := engine.NewProfileStore()
	interactions := engine.NewInteractionLog()

	var metrics *engine.Metrics
	if cfg.Monitoring.Enabled {
		metrics = engine.NewMetrics(prometheus.DefaultRegisterer, products, profiles, interactions)
	}

	features := engine.NewFeatureExtractor(&cfg.Engine)
	app.engine = engine.New(features, products, profiles, interactions, &cfg.Engine, app.logger, metrics)

	app.handlers = handlers.New(app.logger, app.engine)

	if cfg.Cache.Enabled {
		opts, err := redis.ParseURL(cfg.Cache.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cache url: %w", err)
		}
		app.cache = redis.NewClient(opts)
	}

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Logger() *logrus.Logger {
	return a.logger
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.WithError(err).Error("Error closing cache connection")
			return err
		}
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
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(&a.config.Security.CORS))

	// Health check endpoint
	router.GET("/health", a.handlers.Health.Check)

	// Prometheus metrics endpoint
	if a.config.Monitoring.Enabled {
		router.GET(a.config.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	// API routes
	api := router.Group("/api/v1/ai")
	{
		recommendations := api.Group("/recommendations")
		recommendations.Use(middleware.ResponseCache(a.cache, &a.config.Cache, a.logger))
		{
			recommendations.GET("/content/:productId", a.handlers.Recommendation.Content)
			recommendations.GET("/user/:userId", a.handlers.Recommendation.User)
		}

		api.POST("/train", a.handlers.Interaction.Train)
		api.POST("/embeddings", a.handlers.Embedding.Update)
		api.GET("/stats", a.handlers.Stats.Get)
	}

	a.router = router
}
