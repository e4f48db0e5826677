package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort          string
	DatabaseURL       string
	AppMode           string
	FiberPrefork      bool
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnLifetime time.Duration
	DBMaxConnIdleTime time.Duration

	WorkerBufferSize int
	WorkerBatchSize  int
	WorkerFlushEvery time.Duration

	SessionTimeout    time.Duration
	ReportDebounce    time.Duration
	OptimizerLookback time.Duration
	OptimizerInterval time.Duration

	NotifyRecipient string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", ":8080"),
		AppMode:           strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork:      parseBoolEnv("FIBER_PREFORK", false),
		DBMaxConns:        parseInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        parseInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnLifetime: parseDurationEnv("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		DBMaxConnIdleTime: parseDurationEnv("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		WorkerBufferSize:  parseIntEnv("WORKER_BUFFER_SIZE", 4096),
		WorkerBatchSize:   parseIntEnv("WORKER_BATCH_SIZE", 200),
		WorkerFlushEvery:  parseDurationEnv("WORKER_FLUSH_EVERY", 2*time.Second),
		SessionTimeout:    parseDurationEnv("SESSION_TIMEOUT", 30*time.Minute),
		ReportDebounce:    parseDurationEnv("REPORT_DEBOUNCE", 6*time.Hour),
		OptimizerLookback: parseDurationEnv("OPTIMIZER_LOOKBACK", 7*24*time.Hour),
		OptimizerInterval: parseDurationEnv("OPTIMIZER_INTERVAL", 24*time.Hour),
		NotifyRecipient:   getEnv("NOTIFY_RECIPIENT", "info@advikentures.com"),
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// Production reports whether background schedulers should run and
// analytics writes should reach the database. In dev mode tracking is a
// no-op so shared analytics data is not polluted.
func (c *Config) Production() bool {
	return c.AppMode == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseInt32Env(key string, fallback int32) int32 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return int32(parsed)
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
