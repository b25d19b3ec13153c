package links

import (
	"time"

	"github.com/google/uuid"
)

// Link is one outbound link on a user's public page.
type Link struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	URL         string
	Position    int
	Active      bool
	ScheduledAt *time.Time // publish-at time; nil publishes immediately
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsVisibleAt reports whether the link should render on the public page at
// the given time: active, and past its scheduled publish time if it has one.
func (l *Link) IsVisibleAt(now time.Time) bool {
	if !l.Active {
		return false
	}
	if l.ScheduledAt != nil && now.Before(*l.ScheduledAt) {
		return false
	}
	return true
}

// CreateInput carries the caller-supplied fields for a new link.
type CreateInput struct {
	Title       string
	URL         string
	ScheduledAt *time.Time
}

// UpdateInput carries the caller-supplied fields for a link update.
// Nil pointers leave the corresponding field unchanged.
type UpdateInput struct {
	Title       *string
	URL         *string
	Active      *bool
	ScheduledAt *time.Time
	// ClearSchedule removes an existing publish time. Needed because a nil
	// ScheduledAt means "leave unchanged", not "unset".
	ClearSchedule bool
}
