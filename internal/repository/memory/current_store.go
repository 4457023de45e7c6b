// Package memory holds the ephemeral per-session cache of the active
// analysis. Entries live for the process lifetime; a restart discards them,
// which matches the cache's contract.
package memory

import (
	"sync"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type currentStore struct {
	mu      sync.RWMutex
	entries map[string]domain.CurrentAnalysis
}

// NewCurrentStore creates an in-memory CurrentStore.
func NewCurrentStore() port.CurrentStore {
	return &currentStore{entries: make(map[string]domain.CurrentAnalysis)}
}

func (s *currentStore) Load(key string) (*domain.CurrentAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cur, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return &cur, true
}

func (s *currentStore) Save(key string, cur domain.CurrentAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = cur
}

func (s *currentStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
