package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates the students and schedule tables.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if err := createStudentsTable(ctx, db); err != nil {
		return err
	}
	return createScheduleTable(ctx, db)
}

// hobby is nullable: a missing hobby and an empty one display the same way.
func createStudentsTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS students (
		nickname TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		class TEXT NOT NULL,
		hobby TEXT,
		updated_at INTEGER NOT NULL
	);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create students table: %w", err)
	}

	return nil
}

// A schedule row with a NULL or empty subject marks a day off; a missing row
// means no data for that day.
func createScheduleTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS schedule (
		day TEXT PRIMARY KEY CHECK(day IN ('senin', 'selasa', 'rabu', 'kamis', 'jumat', 'sabtu', 'minggu')),
		subject TEXT,
		updated_at INTEGER NOT NULL
	);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schedule table: %w", err)
	}

	return nil
}
