package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"API_URL", "LOG_LEVEL", "LISTEN_ADDR", "METRICS_LISTEN_ADDR",
		"COOKIE_SECURE", "ANIMALCTL_STORAGE", "ANIMALCTL_STORAGE_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "localhost:9090", cfg.MetricsListenAddr)
	assert.False(t, cfg.CookieSecure)
	assert.Empty(t, cfg.APIURL)
	assert.NotEmpty(t, cfg.StoragePath)
	assert.True(t, strings.HasSuffix(cfg.StoragePath, ".db"))
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", " http://localhost:4000 ")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LISTEN_ADDR", ":8000")
	t.Setenv("METRICS_LISTEN_ADDR", ":9100")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ANIMALCTL_STORAGE", "/tmp/a.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, ":9100", cfg.MetricsListenAddr)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "/tmp/a.db", cfg.StoragePath)
}

func TestLoad_InvalidCookieSecure(t *testing.T) {
	clearEnv(t)
	t.Setenv("COOKIE_SECURE", "maybe")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{APIURL: "http://localhost:4000", LogLevel: "info"}, ""},
		{"missing api url", Config{LogLevel: "info"}, "API_URL environment variable is required"},
		{"relative api url", Config{APIURL: "localhost:4000", LogLevel: "info"}, "absolute http(s) URL"},
		{"bad scheme", Config{APIURL: "ftp://host", LogLevel: "info"}, "absolute http(s) URL"},
		{"bad log level", Config{APIURL: "http://h", LogLevel: "loud"}, "invalid log level"},
		{"short storage key", Config{APIURL: "http://h", LogLevel: "info", StorageKey: "abcd"}, "ANIMALCTL_STORAGE_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("verbose")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("API_URL")
	t.Setenv("LOG_LEVEL", "warn")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_URL=http://from-dotenv:4000\nLOG_LEVEL=debug\n"), 0o600))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:4000", cfg.APIURL)
	// variables already in the environment win
	assert.Equal(t, "warn", cfg.LogLevel)
}
