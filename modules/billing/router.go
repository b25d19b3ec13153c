package billing

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/linkbio/modules/api"
	"github.com/dmitrymomot/linkbio/pkg/entitlement"
	"github.com/dmitrymomot/linkbio/pkg/subscription"
)

// SubscriptionService is the subset of subscription.Service the module needs.
type SubscriptionService interface {
	CreateCheckoutLink(ctx context.Context, userID uuid.UUID, planID string, opts subscription.CheckoutOptions) (*subscription.CheckoutLink, error)
	GetCustomerPortalLink(ctx context.Context, userID uuid.UUID) (*subscription.PortalLink, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	GetRecord(ctx context.Context, userID uuid.UUID) (*subscription.Record, error)
}

// EntitlementService resolves effective capabilities for the current user.
type EntitlementService interface {
	EffectiveCapabilities(ctx context.Context, userID uuid.UUID) (entitlement.Capabilities, error)
}

// RouterOptions configures the billing module.
type RouterOptions struct {
	Subscriptions SubscriptionService
	Entitlements  EntitlementService
	Log           *slog.Logger // optional, discards when nil
}

// Router mounts the billing endpoints. The webhook endpoint is unauthenticated
// since Paddle signs its requests; everything else requires a user identity in
// the request context.
//
//	r.Mount("/billing", billing.Router(billing.RouterOptions{
//	    Subscriptions: subscriptionSvc,
//	    Entitlements:  entitlementSvc,
//	    Log:           log,
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Subscriptions == nil {
		panic("billing: subscription service is required")
	}
	if opts.Entitlements == nil {
		panic("billing: entitlement service is required")
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	h := &handlers{
		subscriptions: opts.Subscriptions,
		entitlements:  opts.Entitlements,
		log:           log,
	}

	r := chi.NewRouter()
	r.Post("/webhook", h.webhook)

	r.Group(func(r chi.Router) {
		r.Use(api.RequireUser)
		r.Post("/checkout", h.checkout)
		r.Get("/portal", h.portal)
		r.Get("/subscription", h.currentSubscription)
		r.Get("/capabilities", h.capabilities)
	})

	return r
}
