package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// slowQueryThreshold marks reads worth a warning log.
const slowQueryThreshold = 100 * time.Millisecond

// SaveStudent inserts or updates a student record
func (db *DB) SaveStudent(ctx context.Context, student *Student) error {
	query := `
		INSERT INTO students (nickname, name, class, hobby, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(nickname) DO UPDATE SET
			name = excluded.name,
			class = excluded.class,
			hobby = excluded.hobby,
			updated_at = excluded.updated_at
	`
	hobby := sql.NullString{String: student.Hobby, Valid: student.Hobby != ""}
	_, err := db.conn.ExecContext(ctx, query, student.Nickname, student.Name, student.Class, hobby, time.Now().Unix())
	if err != nil {
		slog.ErrorContext(ctx, "failed to save student",
			"nickname", student.Nickname,
			"error", err)
		return fmt.Errorf("failed to save student: %w", err)
	}
	return nil
}

// GetStudent retrieves a student by normalized nickname.
func (db *DB) GetStudent(ctx context.Context, nickname string) (*Student, error) {
	query := `SELECT nickname, name, class, hobby FROM students WHERE nickname = ?`

	start := time.Now()
	var (
		student Student
		hobby   sql.NullString
	)
	err := db.conn.QueryRowContext(ctx, query, nickname).Scan(
		&student.Nickname,
		&student.Name,
		&student.Class,
		&hobby,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query student: %w", err)
	}
	student.Hobby = hobby.String

	warnSlow(ctx, "GetStudent", start)
	return &student, nil
}

// CountStudents returns the number of student documents.
func (db *DB) CountStudents(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// SaveSchedule inserts or updates the schedule for one day.
func (db *DB) SaveSchedule(ctx context.Context, entry *ScheduleEntry) error {
	if !IsDay(entry.Day) {
		return fmt.Errorf("save schedule: unknown day %q", entry.Day)
	}

	query := `
		INSERT INTO schedule (day, subject, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			subject = excluded.subject,
			updated_at = excluded.updated_at
	`
	subject := sql.NullString{String: entry.Subject, Valid: entry.Subject != ""}
	if _, err := db.conn.ExecContext(ctx, query, entry.Day, subject, time.Now().Unix()); err != nil {
		slog.ErrorContext(ctx, "failed to save schedule",
			"day", entry.Day,
			"error", err)
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

// GetSchedule retrieves the schedule document for a normalized day key.
func (db *DB) GetSchedule(ctx context.Context, day string) (*ScheduleEntry, error) {
	query := `SELECT day, subject FROM schedule WHERE day = ?`

	start := time.Now()
	var (
		entry   ScheduleEntry
		subject sql.NullString
	)
	err := db.conn.QueryRowContext(ctx, query, day).Scan(&entry.Day, &subject)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	entry.Subject = subject.String

	warnSlow(ctx, "GetSchedule", start)
	return &entry, nil
}

// CountSchedule returns the number of days with a schedule document.
func (db *DB) CountSchedule(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count schedule: %w", err)
	}
	return count, nil
}

func warnSlow(ctx context.Context, operation string, start time.Time) {
	if duration := time.Since(start); duration > slowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", operation,
			"duration_ms", duration.Milliseconds())
	}
}
