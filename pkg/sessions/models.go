package sessions

import (
	"sync"

	"github.com/google/uuid"
)

// Session holds the values of one visitor for the duration of a request.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	values    map[string]string
	dirty     bool
	isNew     bool
	destroyed bool
}

// NewSession creates an empty session with a fresh id.
func NewSession() *Session {
	return &Session{
		ID:     uuid.New(),
		values: make(map[string]string),
		isNew:  true,
	}
}

func loadedSession(id uuid.UUID, values map[string]string) *Session {
	if values == nil {
		values = make(map[string]string)
	}
	return &Session{ID: id, values: values}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.values[key]; ok && old == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

// Delete removes key.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// Values returns a copy of all values.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Dirty reports whether the session changed since it was loaded.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// IsNew reports whether the session was created during this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// Destroyed reports whether the session was removed during this request.
func (s *Session) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

func (s *Session) markDestroyed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}
