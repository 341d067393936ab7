// Package server assembles the HTTP API: middleware, services and routes.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"stockfolio/internal/config"
	_ "stockfolio/internal/docs" // Import swagger docs
	"stockfolio/internal/handlers"
	"stockfolio/internal/middleware"
	"stockfolio/internal/services"
)

// NewRouter wires services and handlers over db and fetcher and returns the
// gin engine serving /api and /swagger.
func NewRouter(cfg *config.Config, db *gorm.DB, fetcher services.QuoteFetcher) *gin.Engine {
	// Services
	activityService := services.NewActivityService(db)
	portfolioService := services.NewPortfolioService(db, fetcher)
	lifecycleService := services.NewLifecycleService(db, activityService)

	// Handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, lifecycleService)
	activityHandler := handlers.NewActivityHandler(activityService)
	healthHandler := handlers.NewHealthHandler(db)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", healthHandler.GetHealth)
	api.GET("/home", portfolioHandler.GetHome)
	api.GET("/positions", portfolioHandler.GetPositions)
	api.POST("/positions", portfolioHandler.PostPosition)
	api.GET("/activity", activityHandler.GetActivity)

	return router
}
