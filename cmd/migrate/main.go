package main

import (
	"os"

	"stockfolio/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		logger.Get().Errorf("Migration error: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}
