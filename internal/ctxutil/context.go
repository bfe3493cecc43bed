// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey contextKey = "ctxutil.requestID"
	intentKey    contextKey = "ctxutil.intent"
)

// WithRequestID adds a request ID to the context for tracing.
// The HTTP logging middleware sets one per inbound request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// WithIntent records the intent the router matched for this request.
func WithIntent(ctx context.Context, intent string) context.Context {
	return context.WithValue(ctx, intentKey, intent)
}

// GetIntent returns the matched intent, or an empty string.
func GetIntent(ctx context.Context) string {
	if v, ok := ctx.Value(intentKey).(string); ok {
		return v
	}
	return ""
}
