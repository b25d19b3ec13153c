package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for tests and local development.
type memStore struct {
	mu     sync.RWMutex
	clicks map[uuid.UUID][]Click // keyed by link owner, in record order
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() Store {
	return &memStore{clicks: make(map[uuid.UUID][]Click)}
}

func (s *memStore) Record(ctx context.Context, click Click) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clicks[click.UserID] = append(s.clicks[click.UserID], click)
	return nil
}

func (s *memStore) ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]Click, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Click
	for _, click := range s.clicks[userID] {
		if click.OccurredAt.Before(since) {
			continue
		}
		result = append(result, click)
	}
	return result, nil
}
