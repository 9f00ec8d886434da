// Package config provides configuration loading and validation from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the configuration shared by the console and the CLI.
type Config struct {
	APIURL            string // Required: base URL of the inventory backend
	LogLevel          string // debug, info, warn, error
	ListenAddr        string // Web console listen address (e.g., ":3000")
	MetricsListenAddr string // Metrics listener address (e.g., "localhost:9090")
	CookieSecure      bool   // Mark the session cookie Secure (HTTPS deployments)
	StoragePath       string // CLI local storage database path
	StorageKey        string // Optional: 64 hex chars encrypting the stored token at rest
}

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" if none) into
// the environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load parses configuration from environment variables.
// Everything except API_URL has a default.
func Load() (*Config, error) {
	cfg := &Config{
		APIURL:            strings.TrimSpace(os.Getenv("API_URL")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ListenAddr:        getEnv("LISTEN_ADDR", ":3000"),
		MetricsListenAddr: getEnv("METRICS_LISTEN_ADDR", "localhost:9090"),
		StoragePath:       getEnv("ANIMALCTL_STORAGE", defaultStoragePath()),
		StorageKey:        os.Getenv("ANIMALCTL_STORAGE_KEY"),
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE %q: %w", v, err)
		}
		cfg.CookieSecure = secure
	}

	return cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API_URL environment variable is required")
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute http(s) URL, got %q", c.APIURL)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	if c.StorageKey != "" && len(c.StorageKey) != 64 {
		return fmt.Errorf("ANIMALCTL_STORAGE_KEY must be 64 hex characters")
	}

	return nil
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", level)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// defaultStoragePath places the CLI store in the user config directory,
// falling back to the working directory.
func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "animalctl.db"
	}
	return filepath.Join(dir, "animalctl", "storage.db")
}
