package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched through errors.Is on a *StatusError.
var (
	ErrUnauthorized = errors.New("inventory: unauthorized")
	ErrNotFound     = errors.New("inventory: resource not found")
	ErrEmptyToken   = errors.New("inventory: login response carried no access token")
)

// StatusError is returned for every non-2xx response.
type StatusError struct {
	StatusCode int
	Body       []byte
	Message    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("inventory: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("inventory: status %d", e.StatusCode)
}

// Is lets errors.Is match the status-specific sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// IsStatusError reports whether err carries a non-2xx backend response,
// as opposed to a transport or decoding failure.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// parseError builds a StatusError, lifting "message" or "error" out of a JSON body.
func parseError(statusCode int, body []byte) error {
	se := &StatusError{StatusCode: statusCode, Body: body}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		se.Message = envelope.Message
		if se.Message == "" {
			se.Message = envelope.Error
		}
	}

	return se
}
