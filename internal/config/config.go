package config

import (
	"os"
	"strconv"
	"time"

	"riskstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Stats    StatsConfig
	Ingest   IngestConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// StatsConfig holds statistics computation settings
type StatsConfig struct {
	// DefaultMode is the variance denominator used when a request does not
	// specify one: "population" (n) or "sample" (n-1).
	DefaultMode string
	// SweepWorkers bounds concurrent per-column computations in a sweep.
	SweepWorkers int
}

// IngestConfig holds data ingestion settings
type IngestConfig struct {
	// MaxRows caps the number of data rows read from a single file.
	MaxRows int
	// Sheet is the worksheet read from .xlsx files.
	Sheet string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Stats: StatsConfig{
			DefaultMode:  getEnvOrDefault("VARIANCE_MODE", "population"),
			SweepWorkers: getEnvIntOrDefault("SWEEP_WORKERS", 4),
		},
		Ingest: IngestConfig{
			MaxRows: getEnvIntOrDefault("INGEST_MAX_ROWS", 100000),
			Sheet:   getEnvOrDefault("INGEST_SHEET", "Sheet1"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Stats.DefaultMode != "population" && config.Stats.DefaultMode != "sample" {
		return errors.ConfigInvalid("VARIANCE_MODE must be population or sample")
	}
	if config.Stats.SweepWorkers < 1 {
		return errors.ConfigInvalid("SWEEP_WORKERS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
