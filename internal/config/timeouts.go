// Package config provides centralized timeout constants for the application.
//
// The chat pipeline itself carries no per-call deadline: each request blocks on
// one document lookup and one completion call, bounded only by the HTTP server
// timeouts below and the client libraries' defaults.
package config

import "time"

// HTTP server timeouts
const (
	// HTTPReadHeader bounds how long a client may take to send request headers.
	HTTPReadHeader = 10 * time.Second

	// HTTPRead is the HTTP server read timeout. Chat payloads are small JSON bodies.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the HTTP server write timeout.
	// Must accommodate a full completion round trip on slow upstream days.
	HTTPWrite = 120 * time.Second

	// HTTPIdle is the HTTP server idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is SQLite busy_timeout pragma value.
	// Seeding runs may write while the server reads.
	DatabaseBusyTimeout = 5 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database connections.
	DatabaseConnMaxLifetime = time.Hour
)

// Graceful shutdown
const (
	// GracefulShutdown is the default timeout for graceful server shutdown.
	GracefulShutdown = 30 * time.Second

	// SentryFlush is how long shutdown waits for buffered error reports.
	SentryFlush = 2 * time.Second
)
