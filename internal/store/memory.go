// internal/store/memory.go
//
// In-memory registry of live game sessions, keyed by game ID.
//
// Characteristics:
//   - Holds *session.Controller values; each owns its own countdown.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Tracks last access so idle games can be swept; sweeping closes them.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/hiddenwords/internal/session"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the registry used by the HTTP layer.
type Store interface {
	// Save registers or replaces a game under id.
	Save(ctx context.Context, id string, c *session.Controller) error

	// Get retrieves a game by ID and marks it as recently used.
	Get(ctx context.Context, id string) (*session.Controller, error)

	// Delete closes and removes a game.
	Delete(ctx context.Context, id string) error

	// Sweep closes and removes games idle since before cutoff; it returns how
	// many were removed.
	Sweep(ctx context.Context, cutoff time.Time) int

	// Len reports the number of live games.
	Len() int
}

type entry struct {
	ctrl     *session.Controller
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*entry
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{games: make(map[string]*entry), now: now}
}

// Save adds or replaces a game. A replaced controller is closed.
func (m *memory) Save(ctx context.Context, id string, c *session.Controller) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.games[id]; ok && old.ctrl != c {
		old.ctrl.Close()
	}
	m.games[id] = &entry{ctrl: c, lastSeen: m.now()}
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*session.Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.ctrl, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	e.ctrl.Close()
	delete(m.games, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.lastSeen.Before(cutoff) {
			e.ctrl.Close()
			delete(m.games, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
