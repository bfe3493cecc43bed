// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/garyellow/kampus-chat-go/internal/buildinfo"
	"github.com/garyellow/kampus-chat-go/internal/chat"
	"github.com/garyellow/kampus-chat-go/internal/config"
	"github.com/garyellow/kampus-chat-go/internal/genai"
	"github.com/garyellow/kampus-chat-go/internal/intent"
	"github.com/garyellow/kampus-chat-go/internal/logger"
	"github.com/garyellow/kampus-chat-go/internal/metrics"
	"github.com/garyellow/kampus-chat-go/internal/modules/schedule"
	"github.com/garyellow/kampus-chat-go/internal/modules/student"
	"github.com/garyellow/kampus-chat-go/internal/prompt"
	"github.com/garyellow/kampus-chat-go/internal/sentry"
	"github.com/garyellow/kampus-chat-go/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg           *config.Config
	logger        *logger.Logger
	db            *storage.DB // nil when the store could not be opened
	metrics       *metrics.Metrics
	registry      *prometheus.Registry
	assistant     *genai.Assistant
	chat          *chat.Service
	server        *http.Server
	metricsServer *http.Server // nil when METRICS_ADDR is empty
}

// Initialize creates and initializes a new application with all dependencies.
// A store or completion client that cannot be set up is logged and left
// nil; requests then receive the fallback texts.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", "kampus-chat-go").WithField("release", buildinfo.Release())
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Set as default logger so package-level slog.*Context() calls go
	// through ContextHandler.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Release(),
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed")
	} else if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error reporting enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	db := openStore(ctx, cfg, log)

	provider := genai.Provider(cfg.LLMProvider)
	completer, err := genai.NewCompleter(ctx, genai.Config{
		Provider: provider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.LLMModel,
	})
	if err != nil {
		log.WithError(err).Warn("Completion client initialization failed")
	}
	if completer == nil {
		log.WithField("provider", provider).Warn("Completion client unavailable, replies will report the error")
	}

	app := newApplication(cfg, log, db, m, registry, genai.NewAssistant(completer, provider, m))
	log.Info("Initialization complete")
	return app, nil
}

// openStore returns nil when no path is configured or the file cannot be opened.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) *storage.DB {
	path := cfg.SQLitePath()
	if path == "" {
		log.Warn("No database path configured, store unavailable")
		return nil
	}

	db, err := storage.New(ctx, path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("Database connection failed, store unavailable")
		return nil
	}

	entry := log.WithField("path", db.Path())
	if count, err := db.CountStudents(ctx); err == nil {
		entry = entry.WithField("students", count)
	}
	if count, err := db.CountSchedule(ctx); err == nil {
		entry = entry.WithField("schedule_days", count)
	}
	entry.Info("Database connected")
	return db
}

// newApplication wires the request pipeline and HTTP servers around
// already-constructed dependencies.
func newApplication(cfg *config.Config, log *logger.Logger, db *storage.DB, m *metrics.Metrics, registry *prometheus.Registry, assistant *genai.Assistant) *Application {
	// A nil *storage.DB must reach the handlers as a nil interface.
	var (
		students  storage.StudentRepository
		schedules storage.ScheduleRepository
	)
	if db != nil {
		students, schedules = db, db
	}

	router := intent.NewRouter(
		student.NewHandler(students, m, log),
		schedule.NewHandler(schedules, m, log),
		m,
	)

	app := &Application{
		cfg:       cfg,
		logger:    log,
		db:        db,
		metrics:   m,
		registry:  registry,
		assistant: assistant,
		chat:      chat.NewService(router, prompt.NewComposer(), assistant, m),
	}

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.routes(),
		ReadHeaderTimeout: config.HTTPReadHeader,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		app.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: config.HTTPReadHeader,
		}
	}

	return app
}

// Handler returns the public HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.run(ctx)
}

func (a *Application) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	servers := []*http.Server{a.server}
	if a.metricsServer != nil {
		servers = append(servers, a.metricsServer)
	}
	for _, srv := range servers {
		g.Go(func() error {
			a.logger.WithField("addr", srv.Addr).Info("Starting HTTP server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			a.logger.Info("Received shutdown signal")
		}
		a.shutdown(servers)
		return nil
	})

	return g.Wait()
}

func (a *Application) shutdown(servers []*http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP servers...")
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).WithField("addr", srv.Addr).Error("HTTP server shutdown error")
		}
	}

	a.logger.Info("Closing resources...")
	if a.assistant != nil {
		if err := a.assistant.Close(); err != nil {
			a.logger.WithError(err).WithField("component", "completion_client").Error("Component close error")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.WithError(err).WithField("component", "database").Error("Component close error")
		}
	}

	if sentry.IsEnabled() && !sentry.Flush(config.SentryFlush) {
		a.logger.Warn("Sentry flush timed out")
	}

	a.logger.Info("Shutdown complete")
}
