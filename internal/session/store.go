package session

import (
	"context"
	"sync"
)

// Store keeps at most one session per key. Implementations do not need
// durability: the engine performs no domain write before the terminal
// step, so a lost session degrades to a restarted flow.
type Store interface {
	Get(ctx context.Context, key Key) (*Session, bool, error)
	Put(ctx context.Context, key Key, s *Session) error
	Clear(ctx context.Context, key Key) error
}

// MemoryStore is the in-process Store used in production and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[Key]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[Key]*Session)}
}

func (m *MemoryStore) Get(ctx context.Context, key Key) (*Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	return s, ok, nil
}

func (m *MemoryStore) Put(ctx context.Context, key Key, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = s
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
	return nil
}
