package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sipico/animal-inventory/internal/inventory"
)

// ErrInvalidDraft is returned when a draft cannot be submitted.
var ErrInvalidDraft = errors.New("console: invalid draft")

// Draft is the edit buffer for a record, holding the text as entered.
type Draft struct {
	Name    string
	Species string
	Age     string
	Habitat string
}

// DraftFrom fills a draft from an existing record.
func DraftFrom(a inventory.Animal) Draft {
	return Draft{
		Name:    a.Name,
		Species: a.Species,
		Age:     a.Age.String(),
		Habitat: a.Habitat,
	}
}

// Input validates the draft and converts it to a request body.
// Every field must be non-blank and the age must parse as a number.
func (d Draft) Input() (*inventory.AnimalInput, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", d.Name},
		{"species", d.Species},
		{"age", d.Age},
		{"habitat", d.Habitat},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidDraft, strings.Join(missing, ", "))
	}

	age, err := inventory.ParseAge(d.Age)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	return &inventory.AnimalInput{
		Name:    strings.TrimSpace(d.Name),
		Species: strings.TrimSpace(d.Species),
		Age:     age,
		Habitat: strings.TrimSpace(d.Habitat),
	}, nil
}
