// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the catalogue snapshot, and the observability integrations.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Snapshot Configuration
	SnapshotPath         string        // Path to the catalogue sessions JSON file
	SnapshotPollInterval time.Duration // How often to check the file for changes (0 = polling disabled)

	// Query Understanding
	SuggestionLimit int // Maximum closest-course suggestions per validation

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Sentry Configuration (empty DSN = disabled)
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack Configuration (empty token = disabled)
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "8080"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),

		SnapshotPath:         getEnv(EnvSnapshotPath, "./data/sessions.json"),
		SnapshotPollInterval: getDurationEnv(EnvSnapshotPollInterval, 5*time.Minute),

		SuggestionLimit: getIntEnv(EnvSuggestionLimit, 3),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.SnapshotPath == "" {
		errs = append(errs, errors.New(EnvSnapshotPath+" is required"))
	}
	if c.SnapshotPollInterval < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %v", EnvSnapshotPollInterval, c.SnapshotPollInterval))
	}
	if c.SuggestionLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvSuggestionLimit, c.SuggestionLimit))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be between 0 and 1, got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
