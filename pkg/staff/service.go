package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/linkbio/pkg/entitlement"
)

// Service answers the single staff question the entitlement layer cares
// about: does this user currently hold an active grant.
type Service struct {
	store Store
}

// NewService creates a staff Service.
// Panics on a nil store to fail fast during initialization.
func NewService(store Store) *Service {
	if store == nil {
		panic("staff: Store is required")
	}
	return &Service{store: store}
}

// IsActiveAdmin reports whether the user holds an active staff grant.
// A missing grant is not an error; store failures propagate so the caller
// can fail closed.
func (s *Service) IsActiveAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	grant, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrGrantNotFound) {
			return false, nil
		}
		return false, err
	}
	return grant.Active, nil
}

// Lookup adapts the service to the entitlement module's lookup contract.
func (s *Service) Lookup() entitlement.AdminLookup {
	return s.IsActiveAdmin
}
