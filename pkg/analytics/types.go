package analytics

import (
	"time"

	"github.com/google/uuid"
)

// Click is one recorded visit to a link on the public page.
// UserID denormalizes the link owner onto the click so aggregation queries
// never need the links table and history survives link deletion.
type Click struct {
	UserID     uuid.UUID
	LinkID     uuid.UUID
	OccurredAt time.Time
	Country    string // ISO 3166-1 alpha-2, empty when unknown
	Referrer   string
}

// Summary is an in-memory aggregation over a set of clicks.
type Summary struct {
	Total     int64
	ByDay     map[string]int64 // keyed by YYYY-MM-DD in UTC
	ByCountry map[string]int64 // unknown countries grouped under "unknown"
	ByLink    map[uuid.UUID]int64
}

// CountryCount is one row of a ranked country breakdown.
type CountryCount struct {
	Country string
	Count   int64
}
