// Package main runs the mock inventory backend as a standalone server for
// local runs and end-to-end checks.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sipico/animal-inventory/internal/testutil/mockzoo"
)

// getPort returns the port from the PORT environment variable or the default.
func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	return port
}

// getTokenTTL reads TOKEN_TTL (a Go duration) so expiry can be exercised by hand.
func getTokenTTL() time.Duration {
	ttl, err := time.ParseDuration(os.Getenv("TOKEN_TTL"))
	if err != nil || ttl <= 0 {
		return mockzoo.DefaultTokenTTL
	}
	return ttl
}

// createServer creates the mock backend, seeding a user when SEED_USER and
// SEED_PASSWORD are set.
func createServer(logger *slog.Logger) (*mockzoo.Server, error) {
	server := mockzoo.NewServer(
		mockzoo.WithTokenTTL(getTokenTTL()),
		mockzoo.WithLogger(logger),
	)

	if user := os.Getenv("SEED_USER"); user != "" {
		if err := server.AddUser(user, os.Getenv("SEED_PASSWORD")); err != nil {
			return nil, err
		}
	}
	return server, nil
}

// createHTTPServer creates an http.Server with the given port and handler.
func createHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// setupShutdownHandler closes the server on SIGINT or SIGTERM.
func setupShutdownHandler(logger *slog.Logger, httpServer *http.Server) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("shutting down mockzoo")
		//nolint:errcheck
		httpServer.Close()
		close(done)
	}()
	return done
}

// runHealthCheck probes the local server. Returns 0 on success, 1 on failure.
func runHealthCheck() int {
	return doHealthCheck("http://localhost:" + getPort() + "/")
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

func main() {
	if len(os.Args) > 1 && os.Args[1] == "health" {
		os.Exit(runHealthCheck())
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	server, err := createServer(logger)
	if err != nil {
		logger.Error("failed to seed user", "error", err)
		os.Exit(1)
	}

	port := getPort()
	httpServer := createHTTPServer(port, server.Handler())
	done := setupShutdownHandler(logger, httpServer)

	logger.Info("mockzoo listening", "addr", httpServer.Addr, "token_ttl", getTokenTTL().String())
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("HTTP server error", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("mockzoo stopped")
}
