package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/renanvzd/nlw-pocket/internal/app"
	"github.com/renanvzd/nlw-pocket/internal/config"
	"github.com/renanvzd/nlw-pocket/internal/logger"
)

// loadConfig reads .env when present, then the environment.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Init(logger.Options{
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
	})
	return cfg, nil
}

func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}
