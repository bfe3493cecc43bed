package genai

import (
	"context"
	"log/slog"
	"time"

	domerrors "github.com/garyellow/kampus-chat-go/internal/errors"
	"github.com/garyellow/kampus-chat-go/internal/metrics"
	"github.com/garyellow/kampus-chat-go/internal/sentry"
)

// FailurePrefix starts every reply produced for a failed completion.
const FailurePrefix = "Maaf, sedang error: "

// Assistant is the fail-soft front of a Completer: it always returns text.
type Assistant struct {
	completer Completer
	provider  Provider
	metrics   *metrics.Metrics
	wrapper   *domerrors.ErrorWrapper
}

// NewAssistant wraps completer, which may be nil when no API key is set.
// provider labels metrics when completer is nil.
func NewAssistant(completer Completer, provider Provider, m *metrics.Metrics) *Assistant {
	if completer != nil {
		provider = completer.Provider()
	}
	return &Assistant{
		completer: completer,
		provider:  provider,
		metrics:   m,
		wrapper:   domerrors.NewWrapper("genai", "complete"),
	}
}

// Complete returns the model's reply, or FailurePrefix followed by the error
// detail when the call cannot be made or fails.
func (a *Assistant) Complete(ctx context.Context, system, user string) string {
	start := time.Now()

	reply, err := a.complete(ctx, system, user)
	label := Classify(err)
	a.metrics.RecordLLM(a.provider.String(), label, time.Since(start).Seconds())

	if err != nil {
		wrapped := a.wrapper.Wrapf(err, FailurePrefix+"%v", err)
		slog.ErrorContext(ctx, "completion failed",
			"provider", a.provider,
			"kind", label,
			"error", wrapped)
		if label != LabelCanceled {
			sentry.CaptureExceptionWithContext(ctx, wrapped)
		}
		return domerrors.GetUserMessage(wrapped)
	}
	return reply
}

func (a *Assistant) complete(ctx context.Context, system, user string) (string, error) {
	if a.completer == nil {
		return "", ErrNotConfigured
	}
	return a.completer.Complete(ctx, system, user)
}

// Close releases the underlying completer.
func (a *Assistant) Close() error {
	if a.completer == nil {
		return nil
	}
	return a.completer.Close()
}
