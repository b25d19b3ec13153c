package links

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for link persistence.
// Lookups are scoped by owner so one user can never address another user's
// links, mirroring row-level security in the hosted database.
type Store interface {
	// Get retrieves a link by owner and ID.
	// Returns ErrLinkNotFound if no such link exists for that owner.
	Get(ctx context.Context, userID, linkID uuid.UUID) (*Link, error)

	// ListByUser returns all links for a user ordered by position.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Link, error)

	// CountByUser returns the number of links a user owns.
	// This is the quota counter: it must be fresh, not cached.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Create persists a new link.
	Create(ctx context.Context, link *Link) error

	// Update persists changes to an existing link.
	Update(ctx context.Context, link *Link) error

	// Delete removes a link by owner and ID.
	Delete(ctx context.Context, userID, linkID uuid.UUID) error

	// UpdatePositions applies new positions in one shot, ordered as given.
	UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}
