// Package sentry wraps the Sentry Go SDK for error reporting. Reporting is
// optional: with no DSN every capture is a no-op.
package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds Sentry configuration.
type Config struct {
	// DSN is the project DSN. Empty disables reporting.
	DSN string

	// Environment identifies the deployment environment (e.g., "production", "staging").
	Environment string

	// Release identifies the application release version.
	Release string

	// SampleRate controls error sampling (0.0-1.0, default 1.0 = 100%).
	SampleRate float64
}

// Initialize sets up the Sentry SDK. If DSN is empty, Sentry is disabled and
// nil is returned.
func Initialize(cfg Config) error {
	if cfg.DSN == "" {
		return nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		AttachStacktrace: true,
	})
}

// Flush waits for buffered events to be sent to the server.
// Returns true if all events were sent within the timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// IsEnabled returns true if Sentry is initialized and active.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureExceptionWithContext captures err on the request hub when the gin
// middleware attached one, falling back to the global hub.
func CaptureExceptionWithContext(ctx context.Context, err error) {
	if err == nil || !IsEnabled() {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
