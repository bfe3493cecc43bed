// Package main provides the seed tool that loads student and schedule
// documents from a JSON file into the store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/garyellow/kampus-chat-go/internal/config"
	"github.com/garyellow/kampus-chat-go/internal/logger"
	"github.com/garyellow/kampus-chat-go/internal/storage"
)

// CLI flags
var (
	fileFlag = flag.String("file", "", "JSON file with students and schedule documents (required)")
	dbFlag   = flag.String("db", "", "Database file path (default: from DATABASE_PATH / DATA_DIR)")
)

func main() {
	flag.Parse()

	if *fileFlag == "" {
		_, _ = fmt.Fprintln(os.Stderr, "seed: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	path := *dbFlag
	if path == "" {
		path = cfg.SQLitePath()
	}
	if path == "" {
		log.Error("No database path configured")
		os.Exit(1)
	}

	f, err := os.Open(*fileFlag)
	if err != nil {
		log.WithError(err).Error("Failed to open seed file")
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	doc, err := parseSeed(f)
	if err != nil {
		log.WithError(err).WithField("file", *fileFlag).Error("Invalid seed file")
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	stats, err := apply(ctx, db, doc)
	if err != nil {
		_ = db.Close()
		log.WithError(err).Error("Seeding failed")
		os.Exit(1)
	}

	log.WithField("path", db.Path()).
		WithField("students", stats.students).
		WithField("schedule_days", stats.schedule).
		Info("Seeding complete")
}
