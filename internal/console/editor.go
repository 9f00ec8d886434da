package console

import "github.com/sipico/animal-inventory/internal/inventory"

// Editor is the state of the create/edit dialog: Closed, Creating or Editing.
type Editor interface {
	isEditor()
}

// Closed means no dialog is shown.
type Closed struct{}

// Creating holds the draft of a record that does not exist yet.
type Creating struct {
	Draft Draft
}

// Editing holds the record being changed and the pending draft.
type Editing struct {
	Record inventory.Animal
	Draft  Draft
}

func (Closed) isEditor()   {}
func (Creating) isEditor() {}
func (Editing) isEditor()  {}

// DeletePrompt is the delete confirmation state. The zero value is closed.
type DeletePrompt struct {
	ID string
}

// Open reports whether a record is awaiting confirmation.
func (p DeletePrompt) Open() bool {
	return p.ID != ""
}
