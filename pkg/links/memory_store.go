package links

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for tests and local development.
type memStore struct {
	mu    sync.RWMutex
	links map[uuid.UUID][]Link // keyed by owner, kept in position order
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() Store {
	return &memStore{links: make(map[uuid.UUID][]Link)}
}

func (s *memStore) Get(ctx context.Context, userID, linkID uuid.UUID) (*Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, link := range s.links[userID] {
		if link.ID == linkID {
			return &link, nil
		}
	}
	return nil, ErrLinkNotFound
}

func (s *memStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.links[userID]), nil
}

func (s *memStore) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.links[userID])), nil
}

func (s *memStore) Create(ctx context.Context, link *Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links[link.UserID] = append(s.links[link.UserID], *link)
	return nil
}

func (s *memStore) Update(ctx context.Context, link *Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.links[link.UserID]
	for i := range owned {
		if owned[i].ID == link.ID {
			owned[i] = *link
			return nil
		}
	}
	return ErrLinkNotFound
}

func (s *memStore) Delete(ctx context.Context, userID, linkID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.links[userID]
	for i := range owned {
		if owned[i].ID == linkID {
			s.links[userID] = slices.Delete(owned, i, i+1)
			return nil
		}
	}
	return ErrLinkNotFound
}

func (s *memStore) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.links[userID]
	byID := make(map[uuid.UUID]Link, len(owned))
	for _, link := range owned {
		byID[link.ID] = link
	}

	reordered := make([]Link, 0, len(orderedIDs))
	for pos, id := range orderedIDs {
		link, ok := byID[id]
		if !ok {
			return ErrLinkNotFound
		}
		link.Position = pos
		reordered = append(reordered, link)
	}

	s.links[userID] = reordered
	return nil
}
