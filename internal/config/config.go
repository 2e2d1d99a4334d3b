package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/renanvzd/nlw-pocket/internal/week"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Logging
	LogLevel string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Week boundary used for summaries and completion limits
	WeekStart time.Weekday

	// Store circuit breaker
	StoreBreakerFailures uint32
	StoreBreakerTimeout  time.Duration

	// Rate limiting for state-changing requests, per client IP
	RateLimitWrites int
	RateLimitWindow time.Duration

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// FromEnv builds the configuration from the process environment.
func FromEnv() (*Config, error) {
	appEnv := envString("APP_ENV", "")
	if appEnv == "" {
		return nil, fmt.Errorf("required env var missing: APP_ENV")
	}

	weekStart, err := week.ParseWeekday(envString("WEEK_START", "sunday"))
	if err != nil {
		return nil, fmt.Errorf("WEEK_START: %w", err)
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "in.orbit"),
		AppEnv:  appEnv, // 'development' or 'production'
		Port:    envString("PORT", "8090"),

		LogLevel: envString("LOG_LEVEL", ""),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/goals.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		WeekStart: weekStart,

		StoreBreakerFailures: uint32(envInt("STORE_BREAKER_FAILURES", 5)),
		StoreBreakerTimeout:  envDuration("STORE_BREAKER_TIMEOUT", 30*time.Second),

		RateLimitWrites: envInt("RATE_LIMIT_WRITES", 60),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", time.Minute),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "pgx" {
		return nil, fmt.Errorf("DB_DRIVER: unsupported driver %q (want sqlite or pgx)", cfg.DBDriver)
	}

	return cfg, nil
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid positive int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
