// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	// Document store
	EnvDataDir      = "DATA_DIR"
	EnvDatabasePath = "DATABASE_PATH"

	// Completion API
	EnvLLMProvider  = "LLM_PROVIDER"
	EnvLLMModel     = "LLM_MODEL"
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	// Observability
	EnvMetricsAddr         = "METRICS_ADDR"
	EnvSentryDSN           = "SENTRY_DSN"
	EnvSentryEnvironment   = "SENTRY_ENVIRONMENT"
	EnvBetterStackToken    = "BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "BETTERSTACK_ENDPOINT"
)
