package store

import (
	"context"
	"sync"

	"github.com/jackzampolin/timetable/internal/schedule"
)

// MemoryStore keeps the encoded database in memory. Get decodes a fresh copy
// so callers never share state with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (*schedule.Database, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()
	if data == nil {
		return nil, ErrNotFound
	}
	return schedule.Decode(data)
}

func (s *MemoryStore) Put(_ context.Context, db *schedule.Database) error {
	data, err := db.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
