package mockzoo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// handleRoot answers GET / so clients can probe reachability.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "mockzoo"})
}

// handleRegister handles POST /user/signin.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if err := s.AddUser(req.Username, req.Password); err != nil {
		if errors.Is(err, ErrUserExists) {
			writeError(w, http.StatusConflict, "user already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "user created"})
}

// handleLogin handles POST /user/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.state.mu.RLock()
	user, ok := s.state.users[req.Username]
	s.state.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.signToken(user.Username, s.now().Add(s.tokenTTL))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

// handleListAnimals handles GET /animal/getAnimals.
func (s *Server) handleListAnimals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{Data: s.Animals()})
}

// handleAddAnimal handles POST /animal/addAnimal.
func (s *Server) handleAddAnimal(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnimal(w, r)
	if !ok {
		return
	}

	animal := Animal{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Species: req.Species,
		Age:     req.Age.Value,
		Habitat: req.Habitat,
	}

	s.state.mu.Lock()
	stored := animal
	s.state.animals = append(s.state.animals, &stored)
	s.state.mu.Unlock()

	writeJSON(w, http.StatusCreated, animalResponse{Message: "animal created", Data: animal})
}

// handleUpdateAnimal handles PUT /animal/updateAnimal/{id}.
func (s *Server) handleUpdateAnimal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, ok := decodeAnimal(w, r)
	if !ok {
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for _, a := range s.state.animals {
		if a.ID == id {
			a.Name = req.Name
			a.Species = req.Species
			a.Age = req.Age.Value
			a.Habitat = req.Habitat
			writeJSON(w, http.StatusOK, animalResponse{Message: "animal updated", Data: *a})
			return
		}
	}

	writeError(w, http.StatusNotFound, "animal not found")
}

// handleDeleteAnimal handles DELETE /animal/deleteAnimal/{id}.
func (s *Server) handleDeleteAnimal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for i, a := range s.state.animals {
		if a.ID == id {
			s.state.animals = append(s.state.animals[:i], s.state.animals[i+1:]...)
			writeJSON(w, http.StatusOK, messageResponse{Message: "animal deleted"})
			return
		}
	}

	writeError(w, http.StatusNotFound, "animal not found")
}

// decodeAnimal reads and validates an animal body, writing a 400 on failure.
func decodeAnimal(w http.ResponseWriter, r *http.Request) (*animalRequest, bool) {
	var req animalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Species) == "" ||
		strings.TrimSpace(req.Habitat) == "" ||
		!req.Age.Set {
		writeError(w, http.StatusBadRequest, "name, species, age and habitat are required")
		return nil, false
	}

	return &req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}
