package web

import (
	"context"
	"net/http"

	"github.com/sipico/animal-inventory/internal/metrics"
	mw "github.com/sipico/animal-inventory/internal/middleware"
	"github.com/sipico/animal-inventory/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// WithSession stores the gate's session in ctx.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok && sess != nil
}

// RequireSession runs the session gate. Rejected requests are redirected to
// the entry view without a message and counted by reason.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.gate.Check(r.Context(), h.cookies(w, r))
		if err != nil {
			reason := session.Reason(err)
			metrics.RecordGateRejection(reason)
			mw.Logger(r.Context(), h.logger).Debug("redirecting to entry view", "reason", reason)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
