package web

import (
	"errors"
	"net/http"

	"github.com/sipico/animal-inventory/internal/console"
	mw "github.com/sipico/animal-inventory/internal/middleware"
)

// entryView is the data for entry.html.
type entryView struct {
	Error        string
	Notice       string
	Username     string
	RegisterOpen bool
}

// HandleEntry shows the login form, or skips it when a usable token is stored.
// GET /
func (h *Handler) HandleEntry(w http.ResponseWriter, r *http.Request) {
	if _, err := h.gate.Peek(r.Context(), h.cookies(w, r)); err == nil {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	view := entryView{RegisterOpen: r.URL.Query().Get("register") == "1"}
	if r.URL.Query().Get("registered") == "1" {
		view.Notice = console.MsgRegistered
	}
	h.render(w, r, "entry.html", view)
}

// HandleLogin exchanges the form credentials for a token cookie.
// POST /login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	logger := mw.Logger(r.Context(), h.logger)

	err := console.Login(r.Context(), h.client, h.cookies(w, r), logger, username, r.FormValue("password"))
	if err != nil {
		h.render(w, r, "entry.html", entryView{Error: authMessage(err), Username: username})
		return
	}

	logger.Info("login successful", "username", username)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleRegister creates an account and returns to the entry view.
// POST /register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	logger := mw.Logger(r.Context(), h.logger)

	if err := console.Register(r.Context(), h.client, logger, username, r.FormValue("password")); err != nil {
		h.render(w, r, "entry.html", entryView{
			Error:        authMessage(err),
			Username:     username,
			RegisterOpen: true,
		})
		return
	}

	logger.Info("user registered", "username", username)
	http.Redirect(w, r, "/?registered=1", http.StatusSeeOther)
}

// HandleLogout forgets the token.
// POST /logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	//nolint:errcheck // clearing a cookie cannot fail
	console.Logout(r.Context(), h.cookies(w, r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func authMessage(err error) string {
	var authErr *console.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return console.MsgGeneric
}
