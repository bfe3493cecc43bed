// Package student implements the student record lookup used to enrich
// prompts with a classmate's name, class and hobby.
package student

import (
	"context"
	"fmt"
	"strings"

	domerrors "github.com/garyellow/kampus-chat-go/internal/errors"
	"github.com/garyellow/kampus-chat-go/internal/logger"
	"github.com/garyellow/kampus-chat-go/internal/metrics"
	"github.com/garyellow/kampus-chat-go/internal/sentry"
	"github.com/garyellow/kampus-chat-go/internal/storage"
)

// Student handler constants.
const (
	ModuleName = "student"
	Collection = "students"
)

// Display texts.
const (
	TextUnavailable = "Database error."
	TextNotFound    = "Data mahasiswa tidak ditemukan di database."
	TextFailure     = "Gagal mengambil data mahasiswa."
	textFound       = "Nama: %s, Kelas: %s, Hobi: %s"
	hobbyFallback   = "-"
)

// Handler looks up student records. A nil repository means the store could
// not be opened; every lookup then reports TextUnavailable.
type Handler struct {
	repo    storage.StudentRepository
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewHandler creates a student handler. repo may be nil.
func NewHandler(repo storage.StudentRepository, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		repo:    repo,
		metrics: m,
		logger:  log,
	}
}

// Find returns a one-line description of the student with the given
// nickname, or a fixed text for the unavailable, not-found and failure cases.
func (h *Handler) Find(ctx context.Context, nickname string) string {
	key := Normalize(nickname)
	student, err := h.lookup(ctx, key)
	h.metrics.RecordLookup(Collection, string(domerrors.KindOf(err)))

	switch {
	case err == nil:
		return Format(student)
	case domerrors.IsUnavailable(err):
		return TextUnavailable
	case domerrors.IsNotFound(err):
		return TextNotFound
	default:
		h.logger.WithModule(ModuleName).WithError(err).ErrorContext(ctx, "Failed to query student")
		sentry.CaptureExceptionWithContext(ctx, err)
		return TextFailure
	}
}

func (h *Handler) lookup(ctx context.Context, key string) (*storage.Student, error) {
	if h.repo == nil {
		return nil, domerrors.ErrUnavailable
	}
	student, err := h.repo.GetStudent(ctx, key)
	if err != nil {
		return nil, domerrors.NewLookupError(Collection, key, err)
	}
	if student == nil {
		return nil, domerrors.ErrNotFound
	}
	return student, nil
}

// Normalize converts a nickname to its document key.
func Normalize(nickname string) string {
	return strings.ToLower(strings.TrimSpace(nickname))
}

// Format renders a found student. An empty hobby is shown as "-".
func Format(s *storage.Student) string {
	hobby := s.Hobby
	if hobby == "" {
		hobby = hobbyFallback
	}
	return fmt.Sprintf(textFound, s.Name, s.Class, hobby)
}
