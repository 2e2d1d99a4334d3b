package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/renanvzd/nlw-pocket/internal/config"
	"github.com/renanvzd/nlw-pocket/internal/db"
	"github.com/renanvzd/nlw-pocket/internal/middleware"
	"github.com/renanvzd/nlw-pocket/internal/repository"
	"github.com/renanvzd/nlw-pocket/internal/service"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	SummaryStore   *repository.BreakerStore
	SummaryService *service.SummaryService
	GoalService    *service.GoalService
	RateLimiter    *middleware.RateLimiter
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return newApp(cfg, database, time.Now), nil
}

func newApp(cfg *config.Config, database *sqlx.DB, now func() time.Time) *App {
	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	completionRepository := repository.NewCompletionRepository(database)

	breakerSettings := repository.DefaultBreakerSettings()
	breakerSettings.FailureThreshold = cfg.StoreBreakerFailures
	breakerSettings.Timeout = cfg.StoreBreakerTimeout
	summaryStore := repository.NewBreakerStore(goalRepository, completionRepository, breakerSettings)

	// Services
	summaryService := service.NewSummaryService(summaryStore, cfg.WeekStart, now)
	goalService := service.NewGoalService(goalRepository, completionRepository, cfg.WeekStart, now)

	return &App{
		Cfg:            cfg,
		DB:             database,
		SummaryStore:   summaryStore,
		SummaryService: summaryService,
		GoalService:    goalService,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitWrites, cfg.RateLimitWindow),
	}
}

func (a *App) Close() error {
	if a.RateLimiter != nil {
		a.RateLimiter.Stop()
	}
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
