package session

import (
	"fmt"
	"sync"

	"wisata/internal/sentinel"
)

// MemoryStore keeps the session in memory for tests and dev runs.
type MemoryStore struct {
	mu  sync.RWMutex
	rec *Record
}

// NewMemory constructs an empty in-memory session store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := rec
	copied.User = append([]byte(nil), rec.User...)
	s.rec = &copied
	return nil
}

func (s *MemoryStore) Read() (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec == nil {
		return Record{}, fmt.Errorf("session store empty: %w", sentinel.ErrNoSession)
	}
	copied := *s.rec
	copied.User = append([]byte(nil), s.rec.User...)
	return copied, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}
