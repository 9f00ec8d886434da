package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sipico/animal-inventory/internal/logging"
	"github.com/sipico/animal-inventory/internal/metrics"
	mw "github.com/sipico/animal-inventory/internal/middleware"
)

// NewRouter creates the console router.
func (h *Handler) NewRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(mw.RequestID)
	r.Use(metrics.Middleware)
	r.Use(mw.HTTPLogging(h.logger, logging.SensitiveFields))
	r.Use(mw.MaxBodySize(mw.DefaultMaxBodySize))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "page not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", h.HandleHealth)
	r.Get("/ready", h.HandleReady)

	// Entry view
	r.Get("/", h.HandleEntry)
	r.Post("/login", h.HandleLogin)
	r.Post("/register", h.HandleRegister)
	r.Post("/logout", h.HandleLogout)

	// Animals view
	r.Route("/home", func(r chi.Router) {
		r.Use(h.RequireSession)

		r.Get("/", h.HandleHome)
		r.Post("/animals", h.HandleCreateAnimal)
		r.Get("/animals/{id}/edit", h.HandleEditAnimal)
		r.Post("/animals/{id}", h.HandleUpdateAnimal)
		r.Get("/animals/{id}/delete", h.HandleDeletePrompt)
		r.Post("/animals/{id}/delete", h.HandleDeleteAnimal)
	})

	return r
}
