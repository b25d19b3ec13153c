package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists clicks and fetches them back for aggregation.
type Store interface {
	// Record appends one click. Best-effort callers (redirect handlers)
	// log failures instead of surfacing them to the visitor.
	Record(ctx context.Context, click Click) error

	// ListByUser returns the user's clicks at or after since,
	// oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]Click, error)
}
