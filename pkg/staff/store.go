package staff

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for staff grant persistence.
// At most one grant per user.
type Store interface {
	// Get retrieves a grant by user ID.
	// Returns ErrGrantNotFound if no grant exists.
	Get(ctx context.Context, userID uuid.UUID) (*Grant, error)

	// Save creates or updates a grant, keyed by UserID.
	// Revocation is Save with Active=false so the audit trail survives.
	Save(ctx context.Context, grant *Grant) error
}
