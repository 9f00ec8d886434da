package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sipico/animal-inventory/internal/config"
	"github.com/sipico/animal-inventory/internal/metrics"
)

// SetLogLevelRequest is the body of POST /loglevel.
type SetLogLevelRequest struct {
	Level string `json:"level"`
}

// NewOpsRouter serves the operator endpoints on the metrics listener.
func (h *Handler) NewOpsRouter(reg prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()
	r.Handle("/metrics", metrics.HandlerFor(reg))
	r.Get("/health", h.HandleHealth)
	r.Post("/loglevel", h.HandleSetLogLevel)
	return r
}

// HandleSetLogLevel changes the runtime log level.
// POST /loglevel
// Body: {"level": "debug|info|warn|error"}
func (h *Handler) HandleSetLogLevel(w http.ResponseWriter, r *http.Request) {
	var req SetLogLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	level, err := config.ParseLogLevel(req.Level)
	if err != nil || req.Level == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "level must be one of debug, info, warn, error")
		return
	}

	h.logLevel.Set(level)
	h.logger.Info("log level changed", "new_level", level.String())

	writeJSON(w, http.StatusOK, map[string]string{"level": level.String()})
}
