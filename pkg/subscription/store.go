package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for subscription record persistence.
// Each user has at most one record, so UserID serves as the primary key.
type Store interface {
	// Get retrieves a record by user ID.
	// Returns ErrRecordNotFound if no record exists.
	Get(ctx context.Context, userID uuid.UUID) (*Record, error)

	// Save creates or updates a record, keyed by UserID.
	Save(ctx context.Context, record *Record) error
}
