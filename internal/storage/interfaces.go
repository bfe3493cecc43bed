// Package storage provides repository interfaces for data access abstraction.
// These interfaces decouple the lookup handlers from the concrete SQLite store
// and let tests substitute failing or in-memory implementations.
package storage

import (
	"context"
)

// StudentRepository defines the interface for student data operations.
type StudentRepository interface {
	// GetStudent returns nil, nil when no document matches nickname.
	GetStudent(ctx context.Context, nickname string) (*Student, error)
	SaveStudent(ctx context.Context, student *Student) error
	CountStudents(ctx context.Context) (int, error)
}

// ScheduleRepository defines the interface for schedule data operations.
type ScheduleRepository interface {
	// GetSchedule returns nil, nil when no document exists for day.
	GetSchedule(ctx context.Context, day string) (*ScheduleEntry, error)
	SaveSchedule(ctx context.Context, entry *ScheduleEntry) error
	CountSchedule(ctx context.Context) (int, error)
}

// Repository combines all repository interfaces.
// Use this when you need access to multiple data types.
type Repository interface {
	StudentRepository
	ScheduleRepository
}

// Compile-time check that DB implements Repository
var _ Repository = (*DB)(nil)
