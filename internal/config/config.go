package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/JoseExp44/StockWebApp/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds market-data acquisition settings
type DataConfig struct {
	Tickers        []string
	DataDir        string
	DownloadPeriod time.Duration
	FetchTimeout   time.Duration
	SkipDownload   bool
}

// DatabaseConfig holds optional PostgreSQL settings. When URL is empty
// the application falls back to the CSV quote cache.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8300"),
		},
		Data: DataConfig{
			Tickers:        splitTickers(getEnvOrDefault("TICKERS", "AAPL,MSFT,IBM")),
			DataDir:        getEnvOrDefault("DATA_DIR", "data"),
			DownloadPeriod: getEnvDurationOrDefault("DOWNLOAD_PERIOD", 365*24*time.Hour),
			FetchTimeout:   getEnvDurationOrDefault("FETCH_TIMEOUT", 30*time.Second),
			SkipDownload:   getEnvBoolOrDefault("SKIP_DOWNLOAD", false),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if len(config.Data.Tickers) == 0 {
		return errors.ConfigInvalid("at least one ticker is required")
	}
	if config.Data.DataDir == "" {
		return errors.ConfigInvalid("data directory is required")
	}
	if config.Data.DownloadPeriod <= 0 {
		return errors.ConfigInvalid("download period must be positive")
	}
	return nil
}

func splitTickers(raw string) []string {
	parts := strings.Split(raw, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToUpper(strings.TrimSpace(p)); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
