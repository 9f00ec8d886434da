// Package console holds the state of the animals screen and the operations
// that change it: loading the list, the create/edit dialog and the two-step
// delete. It renders nothing; the web console and the CLI sit on top of it.
package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sipico/animal-inventory/internal/inventory"
	"github.com/sipico/animal-inventory/internal/session"
)

// Errors returned for calls made in the wrong dialog state.
var (
	ErrEditorClosed = errors.New("console: editor is not open")
	ErrNoSelection  = errors.New("console: no record selected for deletion")
)

// Backend is the part of the inventory client the console uses.
type Backend interface {
	ListAnimals(ctx context.Context, sess *session.Session) ([]inventory.Animal, error)
	AddAnimal(ctx context.Context, sess *session.Session, input *inventory.AnimalInput) error
	UpdateAnimal(ctx context.Context, sess *session.Session, id string, input *inventory.AnimalInput) error
	DeleteAnimal(ctx context.Context, sess *session.Session, id string) error
}

// Console is the view state of the animals screen for one session.
//
// Animals only ever changes through a successful Refresh. Failed mutations
// leave it as it was and set Error.
type Console struct {
	Animals      []inventory.Animal
	Error        string
	Editor       Editor
	DeletePrompt DeletePrompt

	backend Backend
	sess    *session.Session
	logger  *slog.Logger
}

// New creates a console for a session that passed the gate.
func New(backend Backend, sess *session.Session, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		Animals: []inventory.Animal{},
		Editor:  Closed{},
		backend: backend,
		sess:    sess,
		logger:  logger,
	}
}

// Session returns the session the console acts for.
func (c *Console) Session() *session.Session {
	return c.sess
}

// Refresh replaces the list with the backend's collection.
// On failure the previous list is kept and Error is set.
func (c *Console) Refresh(ctx context.Context) error {
	animals, err := c.backend.ListAnimals(ctx, c.sess)
	if err != nil {
		c.logger.Error("failed to fetch animals", "error", err)
		c.Error = MsgListFailed
		return err
	}

	c.Animals = animals
	c.Error = ""
	return nil
}

// Find returns the listed record with id.
func (c *Console) Find(id string) (inventory.Animal, bool) {
	for _, a := range c.Animals {
		if a.ID == id {
			return a, true
		}
	}
	return inventory.Animal{}, false
}

// OpenCreate opens the dialog with an empty draft.
func (c *Console) OpenCreate() {
	c.Editor = Creating{}
}

// OpenEdit opens the dialog pre-filled from record.
func (c *Console) OpenEdit(record inventory.Animal) {
	c.Editor = Editing{Record: record, Draft: DraftFrom(record)}
}

// CloseEditor discards the dialog and its draft.
func (c *Console) CloseEditor() {
	c.Editor = Closed{}
}

// Draft returns the draft of the open dialog.
func (c *Console) Draft() (Draft, bool) {
	switch e := c.Editor.(type) {
	case Creating:
		return e.Draft, true
	case Editing:
		return e.Draft, true
	}
	return Draft{}, false
}

// Save submits draft from the open dialog. The dialog decides between create
// and update. An invalid draft is rejected without contacting the backend.
//
// On success the dialog closes and the list is resynced. On failure the
// dialog stays open holding draft, and the list is untouched.
func (c *Console) Save(ctx context.Context, draft Draft) error {
	var (
		id     string
		isEdit bool
	)
	switch e := c.Editor.(type) {
	case Creating:
		c.Editor = Creating{Draft: draft}
	case Editing:
		c.Editor = Editing{Record: e.Record, Draft: draft}
		id, isEdit = e.Record.ID, true
	default:
		return ErrEditorClosed
	}

	input, err := draft.Input()
	if err != nil {
		c.Error = MsgInvalidDraft
		return err
	}

	if isEdit {
		err = c.backend.UpdateAnimal(ctx, c.sess, id, input)
	} else {
		err = c.backend.AddAnimal(ctx, c.sess, input)
	}
	if err != nil {
		c.fail("failed to save animal", MsgSaveFailed, err)
		return err
	}

	c.Editor = Closed{}
	//nolint:errcheck // a failed resync sets its own message
	c.Refresh(ctx)
	return nil
}

// SelectDelete asks for confirmation before deleting id. Nothing is sent.
func (c *Console) SelectDelete(id string) {
	c.DeletePrompt = DeletePrompt{ID: id}
}

// CancelDelete closes the confirmation prompt.
func (c *Console) CancelDelete() {
	c.DeletePrompt = DeletePrompt{}
}

// ConfirmDelete deletes the selected record. On success the prompt closes and
// the list is resynced; on failure the prompt stays open.
func (c *Console) ConfirmDelete(ctx context.Context) error {
	if !c.DeletePrompt.Open() {
		return ErrNoSelection
	}

	if err := c.backend.DeleteAnimal(ctx, c.sess, c.DeletePrompt.ID); err != nil {
		c.fail("failed to delete animal", MsgDeleteFailed, err)
		return err
	}

	c.DeletePrompt = DeletePrompt{}
	//nolint:errcheck // a failed resync sets its own message
	c.Refresh(ctx)
	return nil
}

// fail records a mutation failure. A backend rejection gets the
// operation-specific message; anything else gets the generic one.
func (c *Console) fail(logMsg, userMsg string, err error) {
	if inventory.IsStatusError(err) {
		c.logger.Warn(logMsg, "error", err)
		c.Error = userMsg
		return
	}
	c.logger.Error(logMsg, "error", err)
	c.Error = MsgGeneric
}
