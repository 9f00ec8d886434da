package mockzoo

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrUserExists is returned by AddUser for a taken username.
var ErrUserExists = errors.New("mockzoo: user already exists")

// AddUser registers an account directly.
func (s *Server) AddUser(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if _, exists := s.state.users[username]; exists {
		return ErrUserExists
	}
	s.state.users[username] = &User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	return nil
}

// HasUser reports whether username is registered.
func (s *Server) HasUser(username string) bool {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	_, ok := s.state.users[username]
	return ok
}

// IssueToken signs a token for username with the server's TTL.
// The user does not need to exist.
func (s *Server) IssueToken(username string) string {
	return s.IssueTokenExpiring(username, s.now().Add(s.tokenTTL))
}

// IssueTokenExpiring signs a token for username expiring at expiresAt.
func (s *Server) IssueTokenExpiring(username string, expiresAt time.Time) string {
	token, err := s.signToken(username, expiresAt)
	if err != nil {
		panic(fmt.Sprintf("mockzoo: sign token: %v", err))
	}
	return token
}

// AddAnimal stores a record and returns its id. An empty ID is generated.
func (s *Server) AddAnimal(a Animal) string {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.animals = append(s.state.animals, &a)
	return a.ID
}

// Animals returns a copy of the stored records in insertion order.
func (s *Server) Animals() []Animal {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	out := make([]Animal, len(s.state.animals))
	for i, a := range s.state.animals {
		out[i] = *a
	}
	return out
}

// GetAnimal returns the record with id, or nil.
func (s *Server) GetAnimal(id string) *Animal {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	for _, a := range s.state.animals {
		if a.ID == id {
			cp := *a
			return &cp
		}
	}
	return nil
}

// SetNextError makes the next count requests, on any route, fail with status.
func (s *Server) SetNextError(status int, message string, count int) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.nextErrorStatus = status
	s.state.nextErrorMessage = message
	s.state.nextErrorCount = count
}

// Requests returns a copy of the request log.
func (s *Server) Requests() []RecordedRequest {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	out := make([]RecordedRequest, len(s.state.requests))
	copy(out, s.state.requests)
	return out
}

// RequestCount returns the number of requests received so far.
func (s *Server) RequestCount() int {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return len(s.state.requests)
}

// ResetRequests clears the request log.
func (s *Server) ResetRequests() {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.requests = nil
}
