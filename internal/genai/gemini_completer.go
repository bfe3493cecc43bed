package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiCompleter uses the Gemini GenerateContent API.
type geminiCompleter struct {
	client *genai.Client
	model  string
}

// newGeminiCompleter creates a Gemini completer.
// Returns nil if the API key is empty.
func newGeminiCompleter(ctx context.Context, cfg Config) (*geminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, nil //nolint:nilnil // Intentional: completion disabled when no API key
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiCompleter{
		client: client,
		model:  cfg.model(),
	}, nil
}

// Complete sends user with system as the system instruction and joins the
// text parts of the first candidate.
func (c *geminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "generate content API call failed",
			"provider", ProviderGemini,
			"model", c.model,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "generate content finished",
			"provider", ProviderGemini,
			"model", c.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"duration_ms", duration.Milliseconds())
	}

	return text.String(), nil
}

// Provider returns the provider type for this completer.
func (c *geminiCompleter) Provider() Provider {
	return ProviderGemini
}

// Close releases resources. The genai client holds no closable state.
func (c *geminiCompleter) Close() error {
	return nil
}
