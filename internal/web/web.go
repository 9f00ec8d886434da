// Package web serves the browser console: the entry view with login and
// registration, and the protected animals view. The access token lives in a
// cookie; every protected request runs the session gate first.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/sipico/animal-inventory/internal/console"
	"github.com/sipico/animal-inventory/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Client is the inventory backend as seen by the console.
type Client interface {
	console.Backend
	console.Authenticator
	Ping(ctx context.Context) error
}

// Handler serves the console pages.
type Handler struct {
	client       Client
	gate         *session.Gate
	templates    *template.Template
	logger       *slog.Logger
	logLevel     *slog.LevelVar
	cookieSecure bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithLogLevel lets the ops endpoint change the level at runtime.
func WithLogLevel(level *slog.LevelVar) Option {
	return func(h *Handler) {
		h.logLevel = level
	}
}

// WithSecureCookies marks the session cookie Secure.
func WithSecureCookies(secure bool) Option {
	return func(h *Handler) {
		h.cookieSecure = secure
	}
}

// NewHandler parses the embedded templates and builds a handler.
func NewHandler(client Client, gate *session.Gate, opts ...Option) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"pathEscape": url.PathEscape,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	h := &Handler{
		client:    client,
		gate:      gate,
		templates: tmpl,
		logger:    slog.Default(),
		logLevel:  new(slog.LevelVar),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}
