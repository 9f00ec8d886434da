// Package mockzoo provides an in-memory mock of the animals inventory backend
// for tests and local runs.
package mockzoo

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
)

// DefaultTokenTTL is the lifetime of issued tokens unless overridden.
const DefaultTokenTTL = time.Hour

// Server is a mock inventory backend.
type Server struct {
	state      *State
	router     chi.Router
	ts         *httptest.Server
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = ttl
	}
}

// WithSigningKey sets the HS256 key used for tokens.
func WithSigningKey(key []byte) Option {
	return func(s *Server) {
		s.signingKey = key
	}
}

// WithClock overrides the time source used for token issue and validation.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithLogger enables request/response logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer builds the mock without starting a listener. Use Handler to serve it.
func NewServer(opts ...Option) *Server {
	s := &Server{
		state:      NewState(),
		signingKey: []byte("mockzoo-signing-key"),
		tokenTTL:   DefaultTokenTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.recordRequests)
	r.Use(LoggingMiddleware(s.logger))
	r.Use(s.injectFailures)

	r.Get("/", s.handleRoot)

	r.Route("/user", func(r chi.Router) {
		r.Post("/signin", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	r.Route("/animal", func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Get("/getAnimals", s.handleListAnimals)
		r.Post("/addAnimal", s.handleAddAnimal)
		r.Put("/updateAnimal/{id}", s.handleUpdateAnimal)
		r.Delete("/deleteAnimal/{id}", s.handleDeleteAnimal)
	})

	s.router = r
	return s
}

// New creates and starts a mock backend on a local httptest listener.
func New(opts ...Option) *Server {
	s := NewServer(opts...)
	s.ts = httptest.NewServer(s.router)
	return s
}

// Handler returns the HTTP handler for use with a standalone server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// URL returns the base URL of the httptest listener.
func (s *Server) URL() string {
	if s.ts == nil {
		return ""
	}
	return s.ts.URL
}

// Close shuts down the httptest listener, if any.
func (s *Server) Close() {
	if s.ts != nil {
		s.ts.Close()
	}
}
