package main

import (
	"fmt"
	"net/http"
	"os"

	"stockfolio/internal/config"
	"stockfolio/internal/database"
	"stockfolio/internal/logger"
	"stockfolio/internal/quotes"
	"stockfolio/internal/server"
	"stockfolio/internal/validator"
)

// @title           Stockfolio API
// @version         1.0
// @description     Stockfolio tracks a single stock portfolio: positions, live valuation and a trade log.

// @host      localhost:8080
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Quote source
	provider := quotes.NewYahooProvider(&http.Client{Timeout: appConfig.QuoteTimeout}, appConfig.QuoteBaseURL)
	fetcher := quotes.NewFetcher(provider)

	validator.Register()
	router := server.NewRouter(appConfig, dbManager.DB(), fetcher)

	log.Infof("Starting Stockfolio API on port %s (db: %s, quotes: %s)", appConfig.Port, dbConfig.Driver, provider.Name())
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
