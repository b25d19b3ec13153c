package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for tests and local development.
type memStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() Store {
	return &memStore{records: make(map[uuid.UUID]Record)}
}

func (s *memStore) Get(ctx context.Context, userID uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	// Copy out so callers cannot mutate the stored value.
	return &record, nil
}

func (s *memStore) Save(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.UserID] = *record
	return nil
}
