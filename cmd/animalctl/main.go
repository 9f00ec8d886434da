// Package main implements animalctl, a command-line client for the animal
// inventory backend. The access token is kept in a local SQLite store so one
// login serves later commands until the token expires.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sipico/animal-inventory/internal/config"
	"github.com/sipico/animal-inventory/internal/inventory"
	"github.com/sipico/animal-inventory/internal/session"
	"github.com/sipico/animal-inventory/internal/storage"
)

const version = "0.1.0"

// command runs one subcommand with its remaining arguments.
type command func(c *cli, ctx context.Context, args []string) error

var commands = map[string]command{
	"login":    (*cli).login,
	"register": (*cli).register,
	"logout":   (*cli).logout,
	"status":   (*cli).status,
	"list":     (*cli).list,
	"add":      (*cli).add,
	"update":   (*cli).update,
	"delete":   (*cli).remove,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errors.New("subcommand required")
	}

	subcommand := args[0]
	switch subcommand {
	case "version":
		fmt.Fprintf(stdout, "animalctl %s\n", version)
		return nil
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	}

	cmd, ok := commands[subcommand]
	if !ok {
		printUsage(stderr)
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c, err := newCLI(ctx, cfg, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	defer c.close()

	return cmd(c, ctx, args[1:])
}

// newCLI opens the local store and builds the backend client.
func newCLI(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*cli, error) {
	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	key, err := storage.ParseEncryptionKey(cfg.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("ANIMALCTL_STORAGE_KEY: %w", err)
	}

	if cfg.StoragePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0o700); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	store, err := storage.New(cfg.StoragePath, key)
	if err != nil {
		return nil, fmt.Errorf("open local storage %s: %w", cfg.StoragePath, err)
	}
	if err := store.Ping(ctx); err != nil {
		//nolint:errcheck
		store.Close()
		return nil, err
	}

	return &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		client: inventory.NewClient(cfg.APIURL, inventory.WithHTTPClient(newHTTPClient(logger))),
		items:  store,
		store:  session.NewLocalStore(store),
		gate:   session.NewGate(session.WithLogger(logger)),
	}, nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: animalctl <subcommand> [flags]

Subcommands:
  login <user>        Log in and keep the access token locally
  register <user>     Create an account
  logout              Forget the stored access token
  status              Show the stored session
  list                List animals (--json for machine output)
  add                 Add an animal (--name, --species, --age, --habitat)
  update <id>         Change an animal; only the given flags are replaced
  delete <id>         Delete an animal after confirmation (--yes to skip)
  version             Print version information

Environment:
  API_URL                 Inventory backend base URL (required)
  LOG_LEVEL               debug, info, warn, error (default info)
  ANIMALCTL_STORAGE       Local storage database path
  ANIMALCTL_STORAGE_KEY   Optional 64 hex chars encrypting the stored token
`)
}
