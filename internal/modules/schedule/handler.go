// Package schedule implements the per-day and weekly class schedule lookups.
package schedule

import (
	"context"
	"fmt"
	"strings"

	domerrors "github.com/garyellow/kampus-chat-go/internal/errors"
	"github.com/garyellow/kampus-chat-go/internal/logger"
	"github.com/garyellow/kampus-chat-go/internal/metrics"
	"github.com/garyellow/kampus-chat-go/internal/sentry"
	"github.com/garyellow/kampus-chat-go/internal/storage"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Schedule handler constants.
const (
	ModuleName = "schedule"
	Collection = "schedule"
)

// Display texts.
const (
	TextUnavailable   = "Database error."
	TextDayFailure    = "Gagal mengambil data jadwal."
	TextWeekFailure   = "Gagal mengambil data seminggu."
	WeekHeader        = "DATA JADWAL SEMINGGU:\n"
	textScheduled     = "Jadwal %s: %s"
	textDayOff        = "Jadwal %s kosong/libur."
	textNoData        = "Tidak ada jadwal untuk hari %s."
	textWeekScheduled = "- %s: %s\n"
	textWeekNoData    = "- %s: Libur/Tidak ada data\n"
	subjectFallback   = "-"
)

// Handler looks up schedule documents. A nil repository means the store
// could not be opened.
type Handler struct {
	repo    storage.ScheduleRepository
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewHandler creates a schedule handler. repo may be nil.
func NewHandler(repo storage.ScheduleRepository, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		repo:    repo,
		metrics: m,
		logger:  log,
	}
}

// FindDay describes the schedule for one day. Unknown day tokens are
// looked up like any other key and report no data.
func (h *Handler) FindDay(ctx context.Context, day string) string {
	key := Normalize(day)
	display := DisplayName(key)

	entry, err := h.lookup(ctx, key)
	switch {
	case err == nil:
		if entry.Subject == "" {
			return fmt.Sprintf(textDayOff, display)
		}
		return fmt.Sprintf(textScheduled, display, entry.Subject)
	case domerrors.IsUnavailable(err):
		return TextUnavailable
	case domerrors.IsNotFound(err):
		return fmt.Sprintf(textNoData, display)
	default:
		h.reportFailure(ctx, err)
		return TextDayFailure
	}
}

// FindWeek builds the seven-line weekly report, Senin through Minggu. A
// failure on any day discards the partial report.
func (h *Handler) FindWeek(ctx context.Context) string {
	if h.repo == nil {
		h.metrics.RecordLookup(Collection, string(domerrors.KindUnavailable))
		return TextUnavailable
	}

	var sb strings.Builder
	sb.WriteString(WeekHeader)
	for _, day := range storage.Days {
		display := DisplayName(day)
		entry, err := h.lookup(ctx, day)
		switch {
		case err == nil:
			subject := entry.Subject
			if subject == "" {
				subject = subjectFallback
			}
			fmt.Fprintf(&sb, textWeekScheduled, display, subject)
		case domerrors.IsNotFound(err):
			fmt.Fprintf(&sb, textWeekNoData, display)
		default:
			h.reportFailure(ctx, err)
			return TextWeekFailure
		}
	}
	return sb.String()
}

func (h *Handler) lookup(ctx context.Context, key string) (*storage.ScheduleEntry, error) {
	entry, err := h.fetch(ctx, key)
	h.metrics.RecordLookup(Collection, string(domerrors.KindOf(err)))
	return entry, err
}

func (h *Handler) fetch(ctx context.Context, key string) (*storage.ScheduleEntry, error) {
	if h.repo == nil {
		return nil, domerrors.ErrUnavailable
	}
	entry, err := h.repo.GetSchedule(ctx, key)
	if err != nil {
		return nil, domerrors.NewLookupError(Collection, key, err)
	}
	if entry == nil {
		return nil, domerrors.ErrNotFound
	}
	return entry, nil
}

func (h *Handler) reportFailure(ctx context.Context, err error) {
	h.logger.WithModule(ModuleName).WithError(err).ErrorContext(ctx, "Failed to query schedule")
	sentry.CaptureExceptionWithContext(ctx, err)
}

// Normalize converts a day token to its document key.
func Normalize(day string) string {
	return strings.ToLower(strings.TrimSpace(day))
}

// DisplayName capitalizes a day key for display ("senin" -> "Senin").
func DisplayName(key string) string {
	// Caser values are stateful; build one per call.
	return cases.Title(language.Indonesian).String(key)
}
