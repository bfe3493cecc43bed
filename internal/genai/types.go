// Package genai provides the chat completion client backing the assistant.
//
// Architecture:
// - Groq: uses github.com/openai/openai-go/v3 against its OpenAI-compatible API
// - Gemini: uses google.golang.org/genai (official SDK)
//
// Each request is a single two-message exchange (system prompt, user message)
// with no history, streaming or tools. Failures are never retried.
package genai

import (
	"context"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderGroq represents Groq's API (OpenAI-compatible, fast inference).
	ProviderGroq Provider = "groq"
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
)

// ProviderEndpoint defines the base URL for OpenAI-compatible providers.
// Gemini is not included as it uses a different SDK.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq: "https://api.groq.com/openai/v1/",
}

// DefaultModel is the fixed completion model per provider.
var DefaultModel = map[Provider]string{
	ProviderGroq:   "llama-3.3-70b-versatile",
	ProviderGemini: "gemini-2.0-flash",
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Completer sends one system prompt and one user message and returns the
// model's reply text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the client.
	Close() error
}

// Config selects and configures a completion provider.
type Config struct {
	Provider Provider
	APIKey   string
	// Model overrides DefaultModel when non-empty.
	Model string
	// BaseURL overrides the provider endpoint when non-empty.
	BaseURL string
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel[c.Provider]
}
