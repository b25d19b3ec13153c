package entitlement

import (
	"context"
	"maps"
	"sync"
)

// inMemSource implements the Source interface using an in-memory plan map.
type inMemSource struct {
	mu    sync.RWMutex
	plans map[PlanID]Capabilities
}

// NewInMemSource returns an in-memory Source with a copy of the given plans.
// Capabilities are plain values, so a shallow map clone is a full copy.
func NewInMemSource(plans map[PlanID]Capabilities) Source {
	return &inMemSource{plans: maps.Clone(plans)}
}

// Load returns a copy of all plan definitions from memory.
func (s *inMemSource) Load(ctx context.Context) (map[PlanID]Capabilities, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.plans), nil
}
