package state

import (
	"errors"
	"sync"
	"time"

	"github.com/KaramelBytes/datasight-cli/internal/analysis"
	"github.com/KaramelBytes/datasight-cli/internal/parser"
	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one uploaded dataset together with its analysis.
type Session struct {
	ID        string
	Filename  string
	Rows      []parser.Row
	Analysis  *analysis.DatasetAnalysis
	CreatedAt time.Time
}

// Store holds sessions in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a dataset under a fresh ID.
func (s *Store) Create(filename string, rows []parser.Row, a *analysis.DatasetAnalysis) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Filename:  filename,
		Rows:      rows,
		Analysis:  a,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

// Get retrieves a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete drops a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
