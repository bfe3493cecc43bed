// Package chat runs the request pipeline behind POST /chat:
// route the message, compose the system prompt, ask the model.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/garyellow/kampus-chat-go/internal/ctxutil"
	"github.com/garyellow/kampus-chat-go/internal/intent"
	"github.com/garyellow/kampus-chat-go/internal/metrics"
)

// Request is the body of POST /chat.
type Request struct {
	Message string `json:"message"`
}

// Reply is the response body of POST /chat.
type Reply struct {
	Reply string `json:"reply"`
}

// Router resolves a message to its intent and context string.
type Router interface {
	Resolve(ctx context.Context, message string) intent.Result
}

// PromptBuilder renders the system prompt around a context string.
type PromptBuilder interface {
	Build(contextData string) string
}

// Assistant answers a system prompt plus user message. It never fails;
// errors come back as reply text.
type Assistant interface {
	Complete(ctx context.Context, system, user string) string
}

// Service wires the pipeline stages. All fields are set once at startup.
type Service struct {
	router    Router
	prompts   PromptBuilder
	assistant Assistant
	metrics   *metrics.Metrics
}

// NewService creates the chat service.
func NewService(router Router, prompts PromptBuilder, assistant Assistant, m *metrics.Metrics) *Service {
	return &Service{
		router:    router,
		prompts:   prompts,
		assistant: assistant,
		metrics:   m,
	}
}

// Handle answers one message. The raw message, not the lowered one, is sent
// to the model.
func (s *Service) Handle(ctx context.Context, req Request) Reply {
	start := time.Now()

	routed := s.router.Resolve(ctx, req.Message)
	ctx = ctxutil.WithIntent(ctx, routed.Intent)

	system := s.prompts.Build(routed.Context)
	reply := s.assistant.Complete(ctx, system, req.Message)

	s.metrics.RecordChat("success", time.Since(start).Seconds())
	slog.InfoContext(ctx, "Chat handled",
		"message_len", len(req.Message),
		"reply_len", len(reply),
		"duration_ms", time.Since(start).Milliseconds())

	return Reply{Reply: reply}
}
