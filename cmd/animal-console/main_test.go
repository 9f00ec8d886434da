package main

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipico/animal-inventory/internal/config"
	"github.com/sipico/animal-inventory/internal/testutil/mockzoo"
)

func loadTestConfig(t *testing.T, apiURL string) *config.Config {
	t.Helper()
	t.Setenv("API_URL", apiURL)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("METRICS_LISTEN_ADDR", "localhost:9191")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestInitializeComponents(t *testing.T) {
	backend := mockzoo.New()
	defer backend.Close()

	c, err := initializeComponents(loadTestConfig(t, backend.URL()))
	require.NoError(t, err)

	assert.NotNil(t, c.logger)
	assert.NotNil(t, c.registry)
	assert.NotNil(t, c.client)
	assert.NotNil(t, c.handler)
	assert.Equal(t, slog.LevelError, c.logLevel.Level())
	assert.Equal(t, backend.URL(), c.client.BaseURL())

	rec := httptest.NewRecorder()
	c.mainRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c.mainRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = httptest.NewRecorder()
	c.opsRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `animal_console_info{version="0.1.0"} 1`)
}

func TestInitializeComponentsWithInvalidLogLevel(t *testing.T) {
	cfg := &config.Config{APIURL: "http://localhost:1", LogLevel: "loud"}

	_, err := initializeComponents(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRunWithInvalidLogLevel(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:1")
	t.Setenv("LOG_LEVEL", "loud")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRunWithoutAPIURL(t *testing.T) {
	t.Setenv("API_URL", "")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_URL")
}

func TestCreateServer(t *testing.T) {
	cfg := loadTestConfig(t, "http://localhost:1")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	server := createServer(cfg, handler)

	assert.Equal(t, ":8080", server.Addr)
	assert.NotNil(t, server.Handler)
	assert.Equal(t, 15*time.Second, server.ReadTimeout)
	assert.Equal(t, 15*time.Second, server.WriteTimeout)
	assert.Equal(t, 60*time.Second, server.IdleTimeout)

	ops := createOpsServer(cfg, handler)
	assert.Equal(t, "localhost:9191", ops.Addr)
}

func TestStartServerAndWaitForShutdownServerStartupError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	server := &http.Server{
		Addr:    "invalid:address:99999",
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	}

	err := startServerAndWaitForShutdown(logger, server)

	require.Error(t, err)
	assert.False(t, errors.Is(err, http.ErrServerClosed))
	assert.Contains(t, err.Error(), "server error")
}

func TestStartServerAndWaitForShutdownGracefulSignalShutdown(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelInfo}))

	server := &http.Server{
		Addr: ":0",
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- startServerAndWaitForShutdown(logger, server)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case err := <-done:
		require.NoError(t, err)
		out := logBuffer.String()
		assert.Contains(t, out, "Received signal, shutting down")
		assert.Contains(t, out, "Server shut down gracefully")
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for graceful shutdown")
	}
}

func TestHealthURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":3000", "http://localhost:3000/health"},
		{"127.0.0.1:8080", "http://127.0.0.1:8080/health"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, healthURL(tt.addr))
	}
}

func TestDoHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   int
	}{
		{"ok", http.StatusOK, 0},
		{"not ready", http.StatusServiceUnavailable, 1},
		{"not found", http.StatusNotFound, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			assert.Equal(t, tt.want, doHealthCheck(server.URL))
		})
	}

	assert.Equal(t, 1, doHealthCheck("http://localhost:99999/health"))
}

func TestRunHealthCheckWithoutServer(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "127.0.0.1:1")
	if got := runHealthCheck(); got != 1 {
		t.Errorf("expected 1 when nothing listens, got %d", got)
	}
	assert.True(t, strings.HasSuffix(healthURL("127.0.0.1:1"), "/health"))
}
