package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/linkbio/modules/api"
	"github.com/dmitrymomot/linkbio/pkg/analytics"
	"github.com/dmitrymomot/linkbio/pkg/entitlement"
)

// ClickSource fetches recorded clicks for aggregation.
type ClickSource interface {
	ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]analytics.Click, error)
}

// EntitlementService resolves effective capabilities for the current user.
type EntitlementService interface {
	EffectiveCapabilities(ctx context.Context, userID uuid.UUID) (entitlement.Capabilities, error)
}

// RouterOptions configures the analytics module.
type RouterOptions struct {
	Clicks       ClickSource
	Entitlements EntitlementService
	Log          *slog.Logger // optional, discards when nil
}

// Router mounts the click analytics endpoints. The summary view requires the
// advanced-analytics capability and the CSV download requires the
// analytics-export capability; users below those tiers get a 403 with an
// upgrade hint.
//
//	r.Mount("/analytics", analytics.Router(analytics.RouterOptions{
//	    Clicks:       clickStore,
//	    Entitlements: entitlementSvc,
//	    Log:          log,
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Clicks == nil {
		panic("analytics: click source is required")
	}
	if opts.Entitlements == nil {
		panic("analytics: entitlement service is required")
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	h := &handlers{
		clicks:       opts.Clicks,
		entitlements: opts.Entitlements,
		log:          log,
	}

	r := chi.NewRouter()
	r.Use(api.RequireUser)
	r.Get("/summary", h.summary)
	r.Get("/export.csv", h.exportCSV)

	return r
}
