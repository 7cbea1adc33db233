package tokenstore

import (
	"sync"
	"time"
)

// MemoryStore is an in-process token store used by tests and by
// non-HTTP consumers of the auth state holder.
type MemoryStore struct {
	mu      sync.RWMutex
	values  map[string]string
	expires map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Get(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if exp, ok := s.expires[name]; ok && time.Now().After(exp) {
		return ""
	}
	return s.values[name]
}

func (s *MemoryStore) Set(name, value string, ttlDays int) {
	if ttlDays <= 0 {
		ttlDays = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	s.expires[name] = time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour)
}

func (s *MemoryStore) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
	delete(s.expires, name)
}
