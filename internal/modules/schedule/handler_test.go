package schedule

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/garyellow/kampus-chat-go/internal/logger"
	"github.com/garyellow/kampus-chat-go/internal/metrics"
	"github.com/garyellow/kampus-chat-go/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRepo fails reads for the days in failOn and delegates the rest.
type flakyRepo struct {
	storage.ScheduleRepository
	failOn map[string]bool
	calls  []string
}

func (r *flakyRepo) GetSchedule(ctx context.Context, day string) (*storage.ScheduleEntry, error) {
	r.calls = append(r.calls, day)
	if r.failOn[day] {
		return nil, errors.New("deadline exceeded")
	}
	return r.ScheduleRepository.GetSchedule(ctx, day)
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func seededDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.SaveSchedule(ctx, &storage.ScheduleEntry{Day: "senin", Subject: "Algoritma"}))
	require.NoError(t, db.SaveSchedule(ctx, &storage.ScheduleEntry{Day: "rabu", Subject: "Basis Data"}))
	require.NoError(t, db.SaveSchedule(ctx, &storage.ScheduleEntry{Day: "sabtu"}))
	return db
}

func TestFindDay(t *testing.T) {
	h := NewHandler(seededDB(t), metrics.New(prometheus.NewRegistry()), testLogger())
	ctx := context.Background()

	tests := []struct {
		day  string
		want string
	}{
		{"senin", "Jadwal Senin: Algoritma"},
		{" RABU ", "Jadwal Rabu: Basis Data"},
		{"sabtu", "Jadwal Sabtu kosong/libur."},
		{"selasa", "Tidak ada jadwal untuk hari Selasa."},
		{"minggu", "Tidak ada jadwal untuk hari Minggu."},
		{"libur", "Tidak ada jadwal untuk hari Libur."},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			assert.Equal(t, tt.want, h.FindDay(ctx, tt.day))
		})
	}
}

func TestFindDay_EveryDayHasOneOfThreeShapes(t *testing.T) {
	h := NewHandler(seededDB(t), nil, testLogger())

	for _, day := range storage.Days {
		got := h.FindDay(context.Background(), day)
		display := DisplayName(day)
		ok := strings.HasPrefix(got, "Jadwal "+display+": ") ||
			got == "Jadwal "+display+" kosong/libur." ||
			got == "Tidak ada jadwal untuk hari "+display+"."
		assert.True(t, ok, "unexpected shape for %s: %q", day, got)
	}
}

func TestFindDay_Unavailable(t *testing.T) {
	h := NewHandler(nil, nil, testLogger())
	assert.Equal(t, TextUnavailable, h.FindDay(context.Background(), "senin"))
}

func TestFindDay_LookupFailure(t *testing.T) {
	repo := &flakyRepo{ScheduleRepository: seededDB(t), failOn: map[string]bool{"senin": true}}
	h := NewHandler(repo, nil, testLogger())

	assert.Equal(t, TextDayFailure, h.FindDay(context.Background(), "senin"))
}

func TestFindWeek(t *testing.T) {
	h := NewHandler(seededDB(t), nil, testLogger())

	want := WeekHeader +
		"- Senin: Algoritma\n" +
		"- Selasa: Libur/Tidak ada data\n" +
		"- Rabu: Basis Data\n" +
		"- Kamis: Libur/Tidak ada data\n" +
		"- Jumat: Libur/Tidak ada data\n" +
		"- Sabtu: -\n" +
		"- Minggu: Libur/Tidak ada data\n"
	got := h.FindWeek(context.Background())
	assert.Equal(t, want, got)

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(got, WeekHeader), "\n"), "\n")
	assert.Len(t, lines, 7)
}

func TestFindWeek_Unavailable(t *testing.T) {
	h := NewHandler(nil, nil, testLogger())
	assert.Equal(t, TextUnavailable, h.FindWeek(context.Background()))
}

func TestFindWeek_AllOrNothing(t *testing.T) {
	repo := &flakyRepo{ScheduleRepository: seededDB(t), failOn: map[string]bool{"kamis": true}}
	h := NewHandler(repo, nil, testLogger())

	assert.Equal(t, TextWeekFailure, h.FindWeek(context.Background()))
	assert.Equal(t, []string{"senin", "selasa", "rabu", "kamis"}, repo.calls, "iteration stops at the failing day")
}

func TestDisplayName(t *testing.T) {
	for key, want := range map[string]string{
		"senin":  "Senin",
		"jumat":  "Jumat",
		"minggu": "Minggu",
	} {
		assert.Equal(t, want, DisplayName(key))
	}
}
