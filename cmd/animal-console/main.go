// Package main runs the animal inventory web console.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sipico/animal-inventory/internal/config"
	"github.com/sipico/animal-inventory/internal/inventory"
	"github.com/sipico/animal-inventory/internal/metrics"
	"github.com/sipico/animal-inventory/internal/session"
	"github.com/sipico/animal-inventory/internal/web"
)

const (
	version         = "0.1.0"
	shutdownTimeout = 30 * time.Second
)

// components holds everything run wires together.
type components struct {
	logger     *slog.Logger
	logLevel   *slog.LevelVar
	registry   *prometheus.Registry
	client     *inventory.Client
	handler    *web.Handler
	mainRouter http.Handler
	opsRouter  http.Handler
}

func main() {
	// Handle health check subcommand for distroless container health checks
	if len(os.Args) > 1 && os.Args[1] == "health" {
		os.Exit(runHealthCheck())
	}

	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c, err := initializeComponents(cfg)
	if err != nil {
		return err
	}

	c.logger.Info("Starting animal console",
		"version", version,
		"listen_addr", cfg.ListenAddr,
		"metrics_listen_addr", cfg.MetricsListenAddr,
		"api_url", cfg.APIURL,
		"log_level", cfg.LogLevel,
	)

	opsServer := createOpsServer(cfg, c.opsRouter)
	go func() {
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("metrics server error", "error", err)
		}
	}()
	defer func() {
		//nolint:errcheck // process is exiting
		opsServer.Close()
	}()

	return startServerAndWaitForShutdown(c.logger, createServer(cfg, c.mainRouter))
}

// initializeComponents builds the logger, metrics, backend client and routers.
func initializeComponents(cfg *config.Config) (*components, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logLevel := new(slog.LevelVar)
	logLevel.Set(level)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	if err := metrics.Init(registry, version); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	httpClient := &http.Client{
		Transport: &inventory.LoggingTransport{
			Transport: http.DefaultTransport,
			Logger:    logger,
		},
	}
	client := inventory.NewClient(cfg.APIURL, inventory.WithHTTPClient(httpClient))

	handler, err := web.NewHandler(client, session.NewGate(session.WithLogger(logger)),
		web.WithLogger(logger),
		web.WithLogLevel(logLevel),
		web.WithSecureCookies(cfg.CookieSecure),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &components{
		logger:     logger,
		logLevel:   logLevel,
		registry:   registry,
		client:     client,
		handler:    handler,
		mainRouter: handler.NewRouter(),
		opsRouter:  handler.NewOpsRouter(registry),
	}, nil
}

// createServer creates the console HTTP server.
func createServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// createOpsServer creates the metrics and log level server.
func createOpsServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.MetricsListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// startServerAndWaitForShutdown serves until SIGINT/SIGTERM, then drains
// in-flight requests.
func startServerAndWaitForShutdown(logger *slog.Logger, server *http.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("Received signal, shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("Server shut down gracefully")
	return nil
}

// healthURL turns a listen address into a URL for the local health probe.
func healthURL(listenAddr string) string {
	if strings.HasPrefix(listenAddr, ":") {
		listenAddr = "localhost" + listenAddr
	}
	return "http://" + listenAddr + "/health"
}

// runHealthCheck performs an HTTP health check against the local server.
// Returns 0 on success, 1 on failure. Used by container HEALTHCHECK.
func runHealthCheck() int {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	return doHealthCheck(healthURL(addr))
}

func doHealthCheck(url string) int {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return 1
	}
	//nolint:errcheck // Response body close errors are unrecoverable in health check
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}
