package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the cockpit service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool

	SessionInactivityTimeout time.Duration

	BrainMode       string
	CompletionKey   string
	CompletionModel string
	ReplyTimeout    time.Duration

	DatabaseURL  string
	StoreTimeout time.Duration

	MemoryRetention time.Duration
}

// Load reads environment variables and applies safe defaults. Absence of the
// completion key or the database URL is never an error: the service falls
// back to canned replies and in-memory stores.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:                 envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:         envOrDefault("APP_METRICS_NAMESPACE", "cockpit"),
		AllowAnyOrigin:           false,
		BrainMode:                envOrDefault("BRAIN_MODE", "auto"),
		CompletionKey:            trimmedEnv("OPENAI_API_KEY"),
		CompletionModel:          envOrDefault("COMPLETION_MODEL", "gpt-4o-mini"),
		DatabaseURL:              trimmedEnv("DATABASE_URL"),
		ShutdownTimeout:          15 * time.Second,
		SessionInactivityTimeout: 2 * time.Minute,
		ReplyTimeout:             10 * time.Second,
		StoreTimeout:             2 * time.Second,
		MemoryRetention:          30 * 24 * time.Hour,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ReplyTimeout, err = durationFromEnv("APP_REPLY_TIMEOUT", cfg.ReplyTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.StoreTimeout, err = durationFromEnv("APP_STORE_TIMEOUT", cfg.StoreTimeout)
	if err != nil {
		return Config{}, err
	}
	retentionDays, err := intFromEnv("MEMORY_RETENTION_DAYS", 30)
	if err != nil {
		return Config{}, err
	}
	cfg.MemoryRetention = time.Duration(retentionDays) * 24 * time.Hour
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.ReplyTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_REPLY_TIMEOUT must be positive")
	}
	if cfg.StoreTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_STORE_TIMEOUT must be positive")
	}
	if retentionDays <= 0 {
		return Config{}, fmt.Errorf("MEMORY_RETENTION_DAYS must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(trimmedEnv(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
