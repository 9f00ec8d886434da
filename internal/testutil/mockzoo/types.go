package mockzoo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Animal is a stored inventory record.
type Animal struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Species string  `json:"species"`
	Age     float64 `json:"age"`
	Habitat string  `json:"habitat"`
}

// User is a registered account. Only the bcrypt hash is kept.
type User struct {
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// RecordedRequest is one entry of the request log.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          []byte
}

// State holds the mock backend state.
type State struct {
	mu       sync.RWMutex
	users    map[string]*User
	animals  []*Animal
	requests []RecordedRequest

	// failure injection
	nextErrorStatus  int
	nextErrorMessage string
	nextErrorCount   int
}

// NewState creates an empty State.
func NewState() *State {
	return &State{
		users: make(map[string]*User),
	}
}

// credentialsRequest is the body of /user/login and /user/signin.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// animalRequest is the body of addAnimal and updateAnimal.
type animalRequest struct {
	Name    string  `json:"name"`
	Species string  `json:"species"`
	Age     flexAge `json:"age"`
	Habitat string  `json:"habitat"`
}

// flexAge accepts a JSON number or a numeric string, like the real backend's
// schema coercion does.
type flexAge struct {
	Value float64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *flexAge) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		data = []byte(s)
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("age must be numeric: %w", err)
	}
	a.Value, a.Set = v, true
	return nil
}

// listResponse wraps the collection.
type listResponse struct {
	Data []Animal `json:"data"`
}

// animalResponse wraps a single record.
type animalResponse struct {
	Message string `json:"message"`
	Data    Animal `json:"data"`
}

// loginResponse carries the issued token.
type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// messageResponse is used for plain acknowledgements and errors.
type messageResponse struct {
	Message string `json:"message"`
}
