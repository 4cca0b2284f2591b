// internal/store/memory.go
//
// In-memory registry of live game sessions for the HTTP server.
//
// Characteristics:
//   - Sessions are keyed by the ID of their current round.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Guesses on one session are serialized by the session's own mutex,
//     not by the registry.
//   - State is lost when the process restarts; finished rounds live on
//     only through the stats ledger.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle/internal/session"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("store: session not found")

// Store holds sessions for the lifetime of the process.
type Store interface {
	// Save registers s under the ID of its current round.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by round ID.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete forgets a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are registered.
	Len() int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

func (m *memory) Save(ctx context.Context, s *session.Session) error {
	r := s.Round()
	if r == nil {
		return session.ErrNoRound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[r.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
