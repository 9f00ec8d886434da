package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Age is an animal's age. The backend stores a number, but records created
// through older clients may carry the raw form text, so decoding accepts both.
type Age float64

// UnmarshalJSON accepts a JSON number, a numeric string, an empty string or null.
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		data = []byte(s)
	}

	v, err := ParseAge(string(data))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// String formats the age without a trailing fraction for whole numbers.
func (a Age) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}

// ParseAge parses user-entered text into an Age.
func ParseAge(s string) (Age, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid age %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid age %q: not a finite number", s)
	}
	return Age(v), nil
}

// Animal is one inventory record as returned by the backend.
type Animal struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Age     Age    `json:"age"`
	Habitat string `json:"habitat"`
}

// AnimalInput is the body for create and update.
type AnimalInput struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Age     Age    `json:"age"`
	Habitat string `json:"habitat"`
}

// Credentials is the login and registration body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ListAnimalsResponse wraps the collection returned by GET /animal/getAnimals.
type ListAnimalsResponse struct {
	Data []Animal `json:"data"`
}

// LoginResponse is the body returned by POST /user/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
