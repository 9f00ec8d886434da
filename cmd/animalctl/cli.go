package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/sipico/animal-inventory/internal/config"
	"github.com/sipico/animal-inventory/internal/console"
	"github.com/sipico/animal-inventory/internal/inventory"
	"github.com/sipico/animal-inventory/internal/session"
	"github.com/sipico/animal-inventory/internal/storage"
)

// errNotLoggedIn is returned by protected commands when the gate rejects the
// stored token.
var errNotLoggedIn = errors.New("no hay una sesión activa; ejecuta 'animalctl login <usuario>'")

// failure is a failed action: the localized message for the user and the
// underlying error for errors.Is/As.
type failure struct {
	msg string
	err error
}

func (f *failure) Error() string { return f.msg }
func (f *failure) Unwrap() error { return f.err }

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	client *inventory.Client
	items  storage.Storage
	store  session.Store
	gate   *session.Gate
}

func (c *cli) close() {
	if err := c.items.Close(); err != nil {
		c.logger.Warn("failed to close local storage", "error", err)
	}
}

// savedAt reports when the token was last written to local storage.
func (c *cli) savedAt(ctx context.Context) time.Time {
	items, err := c.items.ListItems(ctx)
	if err != nil {
		c.logger.Debug("failed to list local storage", "error", err)
		return time.Time{}
	}
	for _, item := range items {
		if item.Key == session.TokenKey {
			return item.UpdatedAt
		}
	}
	return time.Time{}
}

// newLogger logs text on a terminal and JSON otherwise.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{Level: lvl}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options)), nil
	}
	return slog.New(slog.NewJSONHandler(w, options)), nil
}

func newHTTPClient(logger *slog.Logger) *http.Client {
	return &http.Client{
		Transport: &inventory.LoggingTransport{
			Transport: http.DefaultTransport,
			Logger:    logger,
		},
	}
}

func newFlagSet(name string, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	return fs
}

// session runs the gate over the local store.
func (c *cli) session(ctx context.Context) (*session.Session, error) {
	sess, err := c.gate.Check(ctx, c.store)
	if err == nil {
		return sess, nil
	}

	switch {
	case errors.Is(err, session.ErrNoToken),
		errors.Is(err, session.ErrExpired),
		errors.Is(err, session.ErrMalformed):
		c.logger.Debug("session rejected", "reason", session.Reason(err))
		return nil, errNotLoggedIn
	default:
		return nil, err
	}
}

// openConsole opens the animals screen for the stored session.
func (c *cli) openConsole(ctx context.Context) (*console.Console, error) {
	sess, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	return console.New(c.client, sess, c.logger), nil
}

func (c *cli) printAnimals(animals []inventory.Animal) {
	if len(animals) == 0 {
		fmt.Fprintln(c.stdout, console.MsgEmptyList)
		return
	}

	w := tabwriter.NewWriter(c.stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tESPECIE\tEDAD\tHÁBITAT")
	for _, a := range animals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Species, a.Age, a.Habitat)
	}
	//nolint:errcheck // stdout write errors are not actionable
	w.Flush()
}
