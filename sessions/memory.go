package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process. Used when no REDIS_URL is set.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.Expired(time.Now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep removes every session expired at now and returns their ids.
func (m *MemoryStore) Sweep(now time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ended []string
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			ended = append(ended, id)
		}
	}
	return ended
}
