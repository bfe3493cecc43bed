package genai

import (
	"context"
	"fmt"
	"log/slog"
)

// NewCompleter creates the completer for cfg.Provider.
// Returns nil, nil when no API key is configured; callers treat that as
// ErrNotConfigured on every request.
func NewCompleter(ctx context.Context, cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		slog.WarnContext(ctx, "no API key configured for LLM provider", "provider", cfg.Provider)
		return nil, nil
	}

	var (
		c   Completer
		err error
	)
	switch cfg.Provider {
	case ProviderGroq:
		var oc *openaiCompleter
		oc, err = newOpenAICompleter(cfg)
		c = oc
	case ProviderGemini:
		var gc *geminiCompleter
		gc, err = newGeminiCompleter(ctx, cfg)
		c = gc
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "completion client configured",
		"provider", cfg.Provider,
		"model", cfg.model())
	return c, nil
}
