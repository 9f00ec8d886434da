package web

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipico/animal-inventory/internal/metrics"
)

func TestGateRedirectsWithoutToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/home", "", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Zero(t, env.backend.RequestCount())
}

func TestGateExpiredTokenIsClearedWithoutFetch(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.backend.IssueTokenExpiring("ana", time.Now().Add(-time.Second))

	rec := env.do(http.MethodGet, "/home", token, nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Zero(t, env.backend.RequestCount())

	c := tokenCookie(rec)
	require.NotNil(t, c, "expected the expired token cookie to be cleared")
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestGateMalformedTokenRedirectsWithoutClearing(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/home", "not-a-token", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Nil(t, tokenCookie(rec))
	assert.Zero(t, env.backend.RequestCount())
}

func TestGateProtectsEveryAnimalsRoute(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/home"},
		{http.MethodGet, "/home/animals/1/edit"},
		{http.MethodPost, "/home/animals"},
		{http.MethodPost, "/home/animals/1"},
		{http.MethodGet, "/home/animals/1/delete"},
		{http.MethodPost, "/home/animals/1/delete"},
	}

	for _, rt := range routes {
		rec := env.do(rt.method, rt.path, "", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, "%s %s", rt.method, rt.path)
	}
	assert.Zero(t, env.backend.RequestCount())
}

func TestGateRejectionsAreCounted(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.do(http.MethodGet, "/home", env.backend.IssueTokenExpiring("ana", time.Now().Add(-time.Hour)), nil)
	env.do(http.MethodGet, "/home", "garbage", nil)

	out, err := metrics.GetMetricsText(testRegistry)
	require.NoError(t, err)
	assert.Contains(t, out, `animal_console_session_gate_rejections_total{reason="expired"}`)
	assert.Contains(t, out, `animal_console_session_gate_rejections_total{reason="malformed"}`)
}
