package web

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sipico/animal-inventory/internal/console"
	"github.com/sipico/animal-inventory/internal/inventory"
	mw "github.com/sipico/animal-inventory/internal/middleware"
)

// homeView is the data for home.html.
type homeView struct {
	Username     string
	Animals      []inventory.Animal
	Error        string
	Editor       *editorView
	DeleteID     string
	EmptyMessage string
	ConfirmText  string
}

// editorView is the open create/edit dialog.
type editorView struct {
	Title  string
	Action string
	Draft  console.Draft
}

// newConsole builds the console for the session the gate let through.
func (h *Handler) newConsole(r *http.Request) *console.Console {
	sess, _ := SessionFrom(r.Context())
	return console.New(h.client, sess, mw.Logger(r.Context(), h.logger))
}

// HandleHome shows the animals list.
// GET /home, GET /home?editor=new
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	c := h.newConsole(r)
	//nolint:errcheck // failure is reported through c.Error
	c.Refresh(r.Context())

	if r.URL.Query().Get("editor") == "new" {
		c.OpenCreate()
	}
	h.renderHome(w, r, c)
}

// HandleEditAnimal opens the edit dialog for a listed record.
// GET /home/animals/{id}/edit
func (h *Handler) HandleEditAnimal(w http.ResponseWriter, r *http.Request) {
	c := h.newConsole(r)
	if err := c.Refresh(r.Context()); err != nil {
		h.renderHome(w, r, c)
		return
	}

	record, ok := c.Find(chi.URLParam(r, "id"))
	if !ok {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	c.OpenEdit(record)
	h.renderHome(w, r, c)
}

// HandleCreateAnimal submits the create dialog.
// POST /home/animals
func (h *Handler) HandleCreateAnimal(w http.ResponseWriter, r *http.Request) {
	c := h.newConsole(r)
	c.OpenCreate()
	h.save(w, r, c)
}

// HandleUpdateAnimal submits the edit dialog.
// POST /home/animals/{id}
func (h *Handler) HandleUpdateAnimal(w http.ResponseWriter, r *http.Request) {
	c := h.newConsole(r)
	c.OpenEdit(inventory.Animal{ID: chi.URLParam(r, "id")})
	h.save(w, r, c)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, c *console.Console) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	draft := console.Draft{
		Name:    r.FormValue("name"),
		Species: r.FormValue("species"),
		Age:     r.FormValue("age"),
		Habitat: r.FormValue("habitat"),
	}

	if err := c.Save(r.Context(), draft); err != nil {
		h.renderFailure(w, r, c)
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleDeletePrompt asks for confirmation. Nothing is deleted.
// GET /home/animals/{id}/delete
func (h *Handler) HandleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	c := h.newConsole(r)
	//nolint:errcheck // failure is reported through c.Error
	c.Refresh(r.Context())

	c.SelectDelete(chi.URLParam(r, "id"))
	h.renderHome(w, r, c)
}

// HandleDeleteAnimal confirms the deletion.
// POST /home/animals/{id}/delete
func (h *Handler) HandleDeleteAnimal(w http.ResponseWriter, r *http.Request) {
	c := h.newConsole(r)
	c.SelectDelete(chi.URLParam(r, "id"))

	if err := c.ConfirmDelete(r.Context()); err != nil {
		h.renderFailure(w, r, c)
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// renderFailure re-renders the page after a failed mutation, keeping the
// dialog and the action's message, over a fresh read of the list.
func (h *Handler) renderFailure(w http.ResponseWriter, r *http.Request, c *console.Console) {
	msg := c.Error
	//nolint:errcheck // the action's message takes precedence
	c.Refresh(r.Context())
	c.Error = msg
	h.renderHome(w, r, c)
}

func (h *Handler) renderHome(w http.ResponseWriter, r *http.Request, c *console.Console) {
	view := homeView{
		Animals:      c.Animals,
		Error:        c.Error,
		DeleteID:     c.DeletePrompt.ID,
		EmptyMessage: console.MsgEmptyList,
		ConfirmText:  console.MsgConfirmDelete,
	}
	if sess := c.Session(); sess != nil {
		view.Username = sess.Subject
	}

	switch e := c.Editor.(type) {
	case console.Creating:
		view.Editor = &editorView{Title: "Agregar animal", Action: "/home/animals", Draft: e.Draft}
	case console.Editing:
		view.Editor = &editorView{Title: "Editar animal", Action: "/home/animals/" + url.PathEscape(e.Record.ID), Draft: e.Draft}
	}

	h.render(w, r, "home.html", view)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		mw.Logger(r.Context(), h.logger).Error("template error", "template", name, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
