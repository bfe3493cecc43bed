// Package config provides application configuration management.
// It loads settings from environment variables (optionally through a .env file)
// and provides defaults for the server, the document store and the completion API.
//
// Missing credentials are never fatal: the database and the completion client
// degrade to their fallback replies instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported completion providers.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Defaults for unset variables.
const (
	DefaultPort    = "10000"
	DefaultDataDir = "./data"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Document store
	DataDir      string // Directory holding the SQLite file
	DatabasePath string // Explicit database file path (overrides DataDir)

	// Completion API
	LLMProvider  string // "groq" or "gemini"
	LLMModel     string // Empty = provider default
	GroqAPIKey   string
	GeminiAPIKey string

	// Observability
	MetricsAddr         string // Empty = metrics listener disabled
	SentryDSN           string
	SentryEnvironment   string
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, DefaultPort),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),

		DataDir:      getEnvAllowEmpty(EnvDataDir, DefaultDataDir),
		DatabasePath: getEnv(EnvDatabasePath, ""),

		LLMProvider:  strings.ToLower(getEnv(EnvLLMProvider, ProviderGroq)),
		LLMModel:     getEnv(EnvLLMModel, ""),
		GroqAPIKey:   getEnv(EnvGroqAPIKey, ""),
		GeminiAPIKey: getEnv(EnvGeminiAPIKey, ""),

		MetricsAddr:         getEnv(EnvMetricsAddr, ""),
		SentryDSN:           getEnv(EnvSentryDSN, ""),
		SentryEnvironment:   getEnv(EnvSentryEnvironment, "production"),
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects structurally invalid values. Absent API keys and database
// paths are allowed.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvPort))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	switch c.LLMProvider {
	case ProviderGroq, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q", EnvLLMProvider, ProviderGroq, ProviderGemini, c.LLMProvider))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLitePath returns the full path to the SQLite database file.
// Returns an empty string when DATABASE_PATH is unset and DATA_DIR is set
// to the empty string; the store is then unavailable.
func (c *Config) SQLitePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "campus.db")
}

// APIKey returns the API key of the configured completion provider.
func (c *Config) APIKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.GroqAPIKey
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty is getEnv, except that a variable set to the empty
// string keeps that value instead of falling back.
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
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
