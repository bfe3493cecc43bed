// Package intent maps a free-text message to a context string by keyword
// matching. Rules are tried in order and the first trigger contained in the
// lower-cased message wins; matching is plain substring search, so "info"
// inside "informatika" also triggers the student lookup.
package intent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/garyellow/kampus-chat-go/internal/ctxutil"
	domerrors "github.com/garyellow/kampus-chat-go/internal/errors"
	"github.com/garyellow/kampus-chat-go/internal/metrics"
	"github.com/garyellow/kampus-chat-go/internal/storage"
)

// Intent names, used for logs and metrics.
const (
	Week = "week"
	Day  = "day"
	Info = "info"
	None = "none"
)

// Keyword triggers.
const (
	triggerWeek = "seminggu"
	triggerDay  = "jadwal"
	triggerInfo = "info"
)

// Fixed context texts.
const (
	TextMissingDay = "User tanya jadwal tapi tidak sebut hari. Sarankan untuk menyebut hari atau ketik 'Jadwal Seminggu'."
	InfoPrefix     = "Info Mahasiswa: "
)

// StudentFinder resolves a nickname to display text.
type StudentFinder interface {
	Find(ctx context.Context, nickname string) string
}

// ScheduleFinder resolves day and weekly schedule queries to display text.
type ScheduleFinder interface {
	FindDay(ctx context.Context, day string) string
	FindWeek(ctx context.Context) string
}

// Result is the outcome of routing one message.
type Result struct {
	Intent  string
	Context string
}

type rule struct {
	trigger string
	intent  string
	handle  func(ctx context.Context, lowered string) string
}

// Router dispatches messages to the first matching rule.
type Router struct {
	rules   []rule
	metrics *metrics.Metrics
}

// NewRouter builds the router with its fixed rule order:
// weekly schedule, day schedule, student info.
func NewRouter(students StudentFinder, schedules ScheduleFinder, m *metrics.Metrics) *Router {
	return &Router{
		rules: []rule{
			{
				trigger: triggerWeek,
				intent:  Week,
				handle: func(ctx context.Context, _ string) string {
					return schedules.FindWeek(ctx)
				},
			},
			{
				trigger: triggerDay,
				intent:  Day,
				handle: func(ctx context.Context, lowered string) string {
					day, err := DayParameter(lowered)
					if domerrors.KindOf(err) == domerrors.KindAmbiguous {
						slog.DebugContext(ctx, "Schedule intent without day", "error", err)
						return TextMissingDay
					}
					return schedules.FindDay(ctx, day)
				},
			},
			{
				trigger: triggerInfo,
				intent:  Info,
				handle: func(ctx context.Context, lowered string) string {
					return InfoPrefix + students.Find(ctx, Nickname(lowered))
				},
			},
		},
		metrics: m,
	}
}

// Route returns the context string for message; empty when nothing matches.
func (r *Router) Route(ctx context.Context, message string) string {
	return r.Resolve(ctx, message).Context
}

// Resolve is Route plus the name of the matched intent.
func (r *Router) Resolve(ctx context.Context, message string) Result {
	lowered := strings.ToLower(message)

	res := Result{Intent: None}
	for _, rl := range r.rules {
		if strings.Contains(lowered, rl.trigger) {
			ctx = ctxutil.WithIntent(ctx, rl.intent)
			res = Result{Intent: rl.intent, Context: rl.handle(ctx, lowered)}
			break
		}
	}

	r.metrics.RecordIntent(res.Intent)
	slog.DebugContext(ctx, "Routed message", "intent", res.Intent, "context_len", len(res.Context))
	return res
}

// FirstDay returns the first day key, in Senin→Minggu order, contained in
// lowered.
func FirstDay(lowered string) (string, bool) {
	for _, day := range storage.Days {
		if strings.Contains(lowered, day) {
			return day, true
		}
	}
	return "", false
}

// DayParameter returns the day the schedule intent needs, or
// ErrMissingParameter when lowered names none.
func DayParameter(lowered string) (string, error) {
	if day, ok := FirstDay(lowered); ok {
		return day, nil
	}
	return "", domerrors.ErrMissingParameter
}

// Nickname strips every "info" occurrence from lowered and trims the rest.
func Nickname(lowered string) string {
	return strings.TrimSpace(strings.ReplaceAll(lowered, triggerInfo, ""))
}
