package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/garyellow/kampus-chat-go/internal/config"
	"github.com/garyellow/kampus-chat-go/internal/genai"
	"github.com/garyellow/kampus-chat-go/internal/logger"
	"github.com/garyellow/kampus-chat-go/internal/metrics"
	"github.com/garyellow/kampus-chat-go/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoCompleter replies with the user message and keeps the system prompt.
type echoCompleter struct {
	system string
}

func (e *echoCompleter) Complete(_ context.Context, system, user string) (string, error) {
	e.system = system
	return "echo: " + user, nil
}

func (e *echoCompleter) Provider() genai.Provider { return genai.ProviderGroq }
func (e *echoCompleter) Close() error             { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		LogLevel:        "error",
		ShutdownTimeout: 5 * time.Second,
		LLMProvider:     config.ProviderGroq,
	}
}

// setupTestApp creates an Application backed by a temp-file database and a
// fake completion client.
func setupTestApp(t *testing.T, withStore bool) (*Application, *echoCompleter) {
	t.Helper()

	var db *storage.DB
	if withStore {
		var err error
		db, err = storage.New(context.Background(), filepath.Join(t.TempDir(), "campus.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	completer := &echoCompleter{}
	log := logger.NewWithWriter("error", io.Discard)

	app := newApplication(testConfig(), log, db, m, registry, genai.NewAssistant(completer, genai.ProviderGroq, m))
	return app, completer
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHome(t *testing.T) {
	app, _ := setupTestApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StatusMessage, resp["status"])
}

func TestChat(t *testing.T) {
	app, completer := setupTestApp(t, true)
	require.NoError(t, app.db.SaveSchedule(context.Background(), &storage.ScheduleEntry{Day: "senin", Subject: "Algoritma"}))

	w := postChat(t, app.Handler(), `{"message": "Jadwal Senin?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "echo: Jadwal Senin?", resp["reply"])
	assert.Contains(t, completer.system, "Jadwal Senin: Algoritma")
}

func TestChat_StoreUnavailable(t *testing.T) {
	app, completer := setupTestApp(t, false)

	w := postChat(t, app.Handler(), `{"message": "info budi"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["reply"])
	assert.Contains(t, completer.system, "Info Mahasiswa: Database error.")
}

func TestChat_StoreLeftUnconfigured(t *testing.T) {
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvDatabasePath, "")
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Port = "0"

	log := logger.NewWithWriter("error", io.Discard)
	db := openStore(context.Background(), cfg, log)
	require.Nil(t, db)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	completer := &echoCompleter{}
	app := newApplication(cfg, log, db, m, registry, genai.NewAssistant(completer, genai.ProviderGroq, m))

	w := postChat(t, app.Handler(), `{"message": "info budi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, completer.system, "Info Mahasiswa: Database error.")

	w = postChat(t, app.Handler(), `{"message": "jadwal senin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, completer.system, "1. Data Database: Database error.")
}

func TestChat_NoCompleter(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	app := newApplication(testConfig(), logger.NewWithWriter("error", io.Discard), nil, m, registry,
		genai.NewAssistant(nil, genai.ProviderGroq, m))

	w := postChat(t, app.Handler(), `{"message": "halo"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp["reply"], genai.FailurePrefix), resp["reply"])
}

func TestChat_MalformedBody(t *testing.T) {
	app, _ := setupTestApp(t, true)

	for _, body := range []string{`{"message": `, `not json`, `{"message": 42}`, `{}`, `{"message": null}`} {
		w := postChat(t, app.Handler(), body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	app, completer := setupTestApp(t, true)

	w := postChat(t, app.Handler(), `{"message": ""}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "echo: ", resp["reply"])
	assert.Contains(t, completer.system, "1. Data Database: \n")
}

func TestRequestIDHeader(t *testing.T) {
	app, _ := setupTestApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36, "generated IDs are UUIDs")
}

func TestCORS(t *testing.T) {
	app, _ := setupTestApp(t, true)

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
		req.Header.Set("Origin", "https://kampus.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		w := httptest.NewRecorder()
		app.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://kampus.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "content-type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("simple request without origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	app, _ := setupTestApp(t, true)

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestUnknownRoute(t *testing.T) {
	app, _ := setupTestApp(t, true)

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "metrics are not on the public listener")
}

func TestMetricsServer(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsAddr = "127.0.0.1:0"
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	app := newApplication(cfg, logger.NewWithWriter("error", io.Discard), nil, m, registry,
		genai.NewAssistant(&echoCompleter{}, genai.ProviderGroq, m))
	require.NotNil(t, app.metricsServer)

	postChat(t, app.Handler(), `{"message": "halo"}`)

	w := httptest.NewRecorder()
	app.metricsServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kampus_chat_requests_total")
	assert.Contains(t, w.Body.String(), `kampus_intent_total{intent="none"} 1`)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	app, _ := setupTestApp(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestOpenStore(t *testing.T) {
	log := logger.NewWithWriter("error", io.Discard)

	t.Run("no path", func(t *testing.T) {
		assert.Nil(t, openStore(context.Background(), &config.Config{}, log))
	})

	t.Run("unopenable path", func(t *testing.T) {
		// A directory cannot be opened as a database file.
		cfg := &config.Config{DatabasePath: t.TempDir()}
		assert.Nil(t, openStore(context.Background(), cfg, log))
	})

	t.Run("file path", func(t *testing.T) {
		cfg := &config.Config{DatabasePath: filepath.Join(t.TempDir(), "campus.db")}
		db := openStore(context.Background(), cfg, log)
		require.NotNil(t, db)
		_ = db.Close()
	})
}
