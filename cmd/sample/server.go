package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// User is the demo API's only resource.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type userStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

func newUserStore() *userStore {
	return &userStore{users: make(map[string]*User)}
}

func (s *userStore) list(role, nameIncludes string) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		if !strings.Contains(strings.ToLower(u.Name), strings.ToLower(nameIncludes)) {
			continue
		}
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b User) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (s *userStore) get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (s *userStore) create(in userInput) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	cp := *u
	return &cp
}

func (s *userStore) update(id string, in userInput) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	cp := *u
	return &cp, true
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}

type userInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type apiError struct {
	Error string `json:"error"`
}

type deleted struct {
	Deleted bool `json:"deleted"`
}

// newServer serves the demo users API under /v1.
func newServer(store *userStore) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/users", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeJSON(w, r, http.StatusOK, store.list(q.Get("role"), q.Get("nameIncludes")))
	})
	mux.HandleFunc("POST /v1/users", func(w http.ResponseWriter, r *http.Request) {
		var in userInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
			writeJSON(w, r, http.StatusBadRequest, apiError{Error: "name is required"})
			return
		}
		writeJSON(w, r, http.StatusCreated, store.create(in))
	})
	mux.HandleFunc("GET /v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		u, ok := store.get(r.PathValue("id"))
		if !ok {
			writeJSON(w, r, http.StatusNotFound, apiError{Error: "user not found"})
			return
		}
		writeJSON(w, r, http.StatusOK, u)
	})
	mux.HandleFunc("PUT /v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in userInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, r, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		}
		u, ok := store.update(r.PathValue("id"), in)
		if !ok {
			writeJSON(w, r, http.StatusNotFound, apiError{Error: "user not found"})
			return
		}
		writeJSON(w, r, http.StatusOK, u)
	})
	mux.HandleFunc("DELETE /v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, deleted{Deleted: store.delete(r.PathValue("id"))})
	})

	return mux
}

// writeJSON gzips the response when the client asks for it.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")

	var out io.Writer = w
	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer func() {
			//nolint:errcheck,gosec // best-effort after WriteHeader
			gz.Close()
		}()
		out = gz
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(out).Encode(v); err != nil {
		slog.Warn("write response", "err", err)
	}
}
