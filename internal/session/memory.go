package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Used when Redis is not configured.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string][]byte
	seen  map[string]time.Time
	swept time.Time
}

// NewMemoryStore creates a store whose sessions expire ttl after their last save
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string][]byte),
		seen:  make(map[string]time.Time),
	}
}

// Get returns a copy of the stored tab
func (m *MemoryStore) Get(ctx context.Context, id, tabID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := storeKey(id, tabID)
	data, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.now().Sub(m.seen[key]) > m.ttl {
		delete(m.items, key)
		delete(m.seen, key)
		return nil, ErrNotFound
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save stores a copy of s
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	now := m.now()
	s.UpdatedAt = now
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	key := storeKey(s.ID, s.TabID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
	m.seen[key] = now
	m.evictExpired(now)
	return nil
}

func (m *MemoryStore) evictExpired(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.swept) < time.Minute {
		return
	}
	m.swept = now
	for key, at := range m.seen {
		if now.Sub(at) > m.ttl {
			delete(m.items, key)
			delete(m.seen, key)
		}
	}
}

// Len returns the number of stored tabs
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
