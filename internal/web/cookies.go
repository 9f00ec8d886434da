package web

import (
	"context"
	"net/http"
	"time"

	"github.com/sipico/animal-inventory/internal/session"
)

// cookieStore is the session.Store of one browser request: the token is read
// from the request cookie and written back with Set-Cookie.
type cookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	// written holds the value set during this request; nil means unchanged.
	written *string
}

var _ session.Store = (*cookieStore)(nil)

func (h *Handler) cookies(w http.ResponseWriter, r *http.Request) *cookieStore {
	return &cookieStore{w: w, r: r, secure: h.cookieSecure}
}

// Token implements session.Store.
func (s *cookieStore) Token(ctx context.Context) (string, error) {
	if s.written != nil {
		if *s.written == "" {
			return "", session.ErrNoToken
		}
		return *s.written, nil
	}

	c, err := s.r.Cookie(session.TokenKey)
	if err != nil || c.Value == "" {
		return "", session.ErrNoToken
	}
	return c.Value, nil
}

// SaveToken implements session.Store. The cookie lives as long as the token.
func (s *cookieStore) SaveToken(ctx context.Context, token string) error {
	c := s.cookie(token)
	if sess, err := session.Parse(token); err == nil && !sess.ExpiresAt.IsZero() {
		c.Expires = sess.ExpiresAt
	}
	http.SetCookie(s.w, c)
	s.written = &token
	return nil
}

// ClearToken implements session.Store.
func (s *cookieStore) ClearToken(ctx context.Context) error {
	c := s.cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(s.w, c)
	empty := ""
	s.written = &empty
	return nil
}

func (s *cookieStore) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     session.TokenKey,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
