// Package session holds the client-side credential: decoding the bearer token
// the backend issues at login, persisting it under a fixed key, and the gate
// that every protected view runs before doing any work.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the fixed key the access token is stored under, in every store.
const TokenKey = "access_token"

// Gate outcomes. Callers redirect to the entry view on any of them.
var (
	ErrNoToken   = errors.New("session: no stored token")
	ErrExpired   = errors.New("session: token expired")
	ErrMalformed = errors.New("session: malformed token")
)

// Claims is the subset of the token payload the client reads.
// The signature is never verified client-side; only the backend can do that.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Session is the explicit credential passed to every operation that talks to
// the backend on behalf of the user.
type Session struct {
	Token     string
	Subject   string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Parse decodes a token without verifying its signature.
// Any structural problem yields an error wrapping ErrMalformed.
func Parse(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	s := &Session{Token: token, Subject: claims.Username}
	if s.Subject == "" {
		s.Subject = claims.Subject
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Expired reports whether the expiry lies strictly before now, compared in
// whole seconds. A token without an expiry never expires client-side.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return s.ExpiresAt.Unix() < now.Unix()
}

// Authorize sets the Authorization header on an outgoing request.
func (s *Session) Authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.Token)
}

// Reason maps a gate error to a short label for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoToken):
		return "missing"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "store_error"
	}
}
