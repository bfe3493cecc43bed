package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/garyellow/kampus-chat-go/internal/modules/schedule"
	"github.com/garyellow/kampus-chat-go/internal/modules/student"
	"github.com/garyellow/kampus-chat-go/internal/storage"
)

type studentDoc struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Hobby string `json:"hobby"`
}

type scheduleDoc struct {
	Subject string `json:"subject"`
}

// seedFile mirrors the two document collections keyed by document ID.
type seedFile struct {
	Students map[string]studentDoc  `json:"students"`
	Schedule map[string]scheduleDoc `json:"schedule"`
}

type seedStats struct {
	students int
	schedule int
}

// seedStore is the write side of the store used by the tool.
type seedStore interface {
	SaveStudent(ctx context.Context, s *storage.Student) error
	SaveSchedule(ctx context.Context, e *storage.ScheduleEntry) error
}

// parseSeed decodes and validates a seed document. Keys are normalized the
// same way lookups normalize them; unknown day keys and empty nicknames are
// rejected before anything is written.
func parseSeed(r io.Reader) (*seedFile, error) {
	var raw seedFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	doc := &seedFile{
		Students: make(map[string]studentDoc, len(raw.Students)),
		Schedule: make(map[string]scheduleDoc, len(raw.Schedule)),
	}
	for nick, s := range raw.Students {
		key := student.Normalize(nick)
		if key == "" {
			return nil, fmt.Errorf("student with empty nickname")
		}
		if _, dup := doc.Students[key]; dup {
			return nil, fmt.Errorf("duplicate student %q after normalization", key)
		}
		doc.Students[key] = s
	}
	for day, e := range raw.Schedule {
		key := schedule.Normalize(day)
		if !storage.IsDay(key) {
			return nil, fmt.Errorf("unknown day %q", day)
		}
		if _, dup := doc.Schedule[key]; dup {
			return nil, fmt.Errorf("duplicate day %q after normalization", key)
		}
		doc.Schedule[key] = e
	}
	return doc, nil
}

// apply upserts every document in key order.
func apply(ctx context.Context, store seedStore, doc *seedFile) (seedStats, error) {
	var stats seedStats

	for _, nick := range sortedKeys(doc.Students) {
		s := doc.Students[nick]
		if err := store.SaveStudent(ctx, &storage.Student{
			Nickname: nick,
			Name:     s.Name,
			Class:    s.Class,
			Hobby:    s.Hobby,
		}); err != nil {
			return stats, fmt.Errorf("save student %q: %w", nick, err)
		}
		stats.students++
	}

	for _, day := range sortedKeys(doc.Schedule) {
		if err := store.SaveSchedule(ctx, &storage.ScheduleEntry{
			Day:     day,
			Subject: doc.Schedule[day].Subject,
		}); err != nil {
			return stats, fmt.Errorf("save schedule %q: %w", day, err)
		}
		stats.schedule++
	}

	return stats, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
