package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Record represents a user's current billing state.
// Each user has at most one record; absence means the free tier.
// Records are written exclusively by the billing webhook handler.
type Record struct {
	UserID             uuid.UUID // primary key - one record per user
	PlanID             string
	Subscribed         bool
	PeriodEnd          *time.Time // end of the paid period, nil for records without one
	ProviderSubID      string     // provider's subscription ID
	ProviderCustomerID string     // provider's customer ID (ctm_xxx, cus_xxx, etc)
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CancelledAt        *time.Time // set when the subscription is cancelled
}

// IsSubscribedAt reports whether the record grants paid access at the given
// time. An elapsed period end revokes access even when the subscribed flag
// was never flipped, so a missed webhook fails closed.
func (r *Record) IsSubscribedAt(now time.Time) bool {
	if !r.Subscribed {
		return false
	}
	if r.PeriodEnd != nil && !now.Before(*r.PeriodEnd) {
		return false
	}
	return true
}

// IsSubscribed reports whether the record grants paid access right now.
func (r *Record) IsSubscribed() bool {
	return r.IsSubscribedAt(time.Now().UTC())
}

// IsCancelled returns true if the subscription has been cancelled.
func (r *Record) IsCancelled() bool {
	return r.CancelledAt != nil
}
