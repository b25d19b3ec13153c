package staff

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for tests and local development.
type memStore struct {
	mu     sync.RWMutex
	grants map[uuid.UUID]Grant
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() Store {
	return &memStore{grants: make(map[uuid.UUID]Grant)}
}

func (s *memStore) Get(ctx context.Context, userID uuid.UUID) (*Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grant, ok := s.grants[userID]
	if !ok {
		return nil, ErrGrantNotFound
	}
	return &grant, nil
}

func (s *memStore) Save(ctx context.Context, grant *Grant) error {
	if !grant.Role.Valid() {
		return ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.grants[grant.UserID] = *grant
	return nil
}
