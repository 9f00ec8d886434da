package session

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Gate decides, on each protected view activation, whether the stored
// credential allows the view to load.
type Gate struct {
	now    func() time.Time
	logger *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

// WithLogger sets the logger used for rejected activations.
func WithLogger(logger *slog.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// NewGate creates a gate using the wall clock.
func NewGate(opts ...GateOption) *Gate {
	g := &Gate{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check runs the gate against the token in store.
//
//   - no token: ErrNoToken
//   - expired token: the token is removed from store, ErrExpired
//   - undecodable token: ErrMalformed, store untouched
//
// On success the returned Session is what protected operations must use.
func (g *Gate) Check(ctx context.Context, store Store) (*Session, error) {
	sess, err := g.Peek(ctx, store)
	if errors.Is(err, ErrExpired) {
		if clearErr := store.ClearToken(ctx); clearErr != nil {
			g.logger.Warn("failed to clear expired token", "error", clearErr)
		}
	}
	if err != nil {
		g.logger.Debug("session gate rejected activation", "reason", Reason(err))
		return nil, err
	}
	return sess, nil
}

// Peek performs the same validation as Check without modifying store.
// The entry view uses it to skip the login form when a usable token exists.
func (g *Gate) Peek(ctx context.Context, store Store) (*Session, error) {
	token, err := store.Token(ctx)
	if err != nil {
		return nil, err
	}

	sess, err := Parse(token)
	if err != nil {
		return nil, err
	}

	if sess.Expired(g.now()) {
		return nil, ErrExpired
	}

	return sess, nil
}
