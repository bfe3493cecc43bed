package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiCompleter talks to an OpenAI-compatible chat completions endpoint.
type openaiCompleter struct {
	client   openai.Client
	model    string
	provider Provider
}

// newOpenAICompleter creates a completer for an OpenAI-compatible provider.
// Returns nil if apiKey is empty.
func newOpenAICompleter(cfg Config) (*openaiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, nil //nolint:nilnil // Intentional: completion disabled when no API key
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		var ok bool
		baseURL, ok = ProviderEndpoint[cfg.Provider]
		if !ok {
			return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", cfg.Provider)
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	return &openaiCompleter{
		client:   client,
		model:    cfg.model(),
		provider: cfg.Provider,
	}, nil
}

// Complete sends the system prompt and user message and returns the first
// choice's content.
func (c *openaiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "chat completion API call failed",
			"provider", c.provider,
			"model", c.model,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		statusCode := 0
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			statusCode = apiErr.StatusCode
		}
		return "", WrapError(fmt.Errorf("chat completion failed: %w", err), c.provider, statusCode)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}

	slog.DebugContext(ctx, "chat completion finished",
		"provider", c.provider,
		"model", c.model,
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"duration_ms", duration.Milliseconds())

	return content, nil
}

// Provider returns the provider type for this completer.
func (c *openaiCompleter) Provider() Provider {
	return c.provider
}

// Close releases resources. The openai-go client needs no cleanup.
func (c *openaiCompleter) Close() error {
	return nil
}
