package session

import (
	"context"
	"sync"
	"time"
)

// Store provides session persistence operations. Implementations return
// (nil, nil) for a clean miss; errors indicate a backend failure.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, id string, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// MemoryStore is the process-local fallback backend. It ignores TTLs and
// loses everything on restart; callers must treat it as best-effort.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{store: make(map[string]*Session)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	// hand out a copy; the store owns the record
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) Set(ctx context.Context, id string, s *Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[id] = &cp
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}
