// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"pharmstock/internal/domain/ledger"
	"pharmstock/internal/infrastructure/http/v1/handlers"
	"pharmstock/internal/infrastructure/http/v1/middleware"
	"pharmstock/internal/infrastructure/storage/postgres"
	"pharmstock/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection (health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// Engine computes stock positions and summaries.
	Engine *ledger.Engine
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()
	stockHandler := handlers.NewStockHandler(base, cfg.Engine)

	api := router.Group("/api/v1")
	{
		stock := api.Group("/stock")
		{
			stock.GET("/positions", stockHandler.GetPositions)
			stock.GET("/summary", stockHandler.GetSummary)
			stock.GET("/export", stockHandler.Export)
		}
	}

	return router
}
