package genai

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrNotConfigured is returned when no API key is set for the provider.
	ErrNotConfigured = errors.New("LLM provider not configured: missing API key")

	// ErrEmptyResponse is returned when the provider answers without any text.
	ErrEmptyResponse = errors.New("empty completion response")
)

// LLMError wraps an error with provider and HTTP status information.
type LLMError struct {
	Err        error
	StatusCode int
	Provider   Provider
}

// Error implements the error interface.
func (e *LLMError) Error() string {
	if e.StatusCode > 0 {
		return e.Err.Error() + " (status: " + strconv.Itoa(e.StatusCode) + ")"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *LLMError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with provider and status code information.
func WrapError(err error, provider Provider, statusCode int) error {
	if err == nil {
		return nil
	}
	return &LLMError{
		Err:        err,
		StatusCode: statusCode,
		Provider:   provider,
	}
}

// Failure labels reported by Classify.
const (
	LabelSuccess       = "success"
	LabelNotConfigured = "not_configured"
	LabelEmpty         = "empty"
	LabelCanceled      = "canceled"
	LabelTimeout       = "timeout"
	LabelAuth          = "auth"
	LabelRateLimit     = "rate_limit"
	LabelBadRequest    = "bad_request"
	LabelServer        = "server"
	LabelNetwork       = "network"
	LabelUnknown       = "error"
)

// Classify maps a completion error to a short label for metrics and logs.
func Classify(err error) string {
	switch {
	case err == nil:
		return LabelSuccess
	case errors.Is(err, ErrNotConfigured):
		return LabelNotConfigured
	case errors.Is(err, ErrEmptyResponse):
		return LabelEmpty
	case errors.Is(err, context.Canceled):
		return LabelCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return LabelTimeout
	}

	var llmErr *LLMError
	if errors.As(err, &llmErr) && llmErr.StatusCode > 0 {
		return classifyStatusCode(llmErr.StatusCode)
	}

	// SDK errors embed the status in their message.
	errStr := strings.ToLower(err.Error())
	switch {
	case containsAny(errStr, "429", "rate limit", "too many requests", "resource_exhausted", "quota"):
		return LabelRateLimit
	case containsAny(errStr, "401", "403", "unauthorized", "unauthenticated", "forbidden", "invalid api key", "permission denied"):
		return LabelAuth
	case containsAny(errStr, "500", "502", "503", "504", "internal server error", "bad gateway", "unavailable", "overloaded"):
		return LabelServer
	case containsAny(errStr, "400", "404", "422", "bad request", "invalid", "not found"):
		return LabelBadRequest
	case containsAny(errStr, "timeout", "deadline"):
		return LabelTimeout
	case containsAny(errStr, "connection", "no such host", "dial tcp", "eof"):
		return LabelNetwork
	default:
		return LabelUnknown
	}
}

func classifyStatusCode(statusCode int) string {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return LabelRateLimit
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return LabelAuth
	case statusCode == http.StatusRequestTimeout:
		return LabelTimeout
	case statusCode >= 500 && statusCode < 600:
		return LabelServer
	case statusCode >= 400 && statusCode < 500:
		return LabelBadRequest
	default:
		return LabelUnknown
	}
}

// containsAny checks if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
