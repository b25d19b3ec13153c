package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/linkbio/pkg/entitlement"
)

// PriceMap maps catalog plan IDs to the billing provider's price IDs and
// back. Webhook payloads only carry price IDs, so the reverse direction is
// what keeps stored records speaking the catalog's language.
type PriceMap map[string]string

// PriceFor returns the provider price ID for a plan, or "".
func (m PriceMap) PriceFor(planID string) string {
	return m[planID]
}

// PlanFor returns the plan ID for a provider price ID, or "".
func (m PriceMap) PlanFor(priceID string) string {
	for plan, price := range m {
		if price == priceID {
			return plan
		}
	}
	return ""
}

// CheckoutOptions contains options for creating a checkout session.
type CheckoutOptions struct {
	Email      string // pre-fill billing email if known
	SuccessURL string // redirect after successful payment
	CancelURL  string // redirect if the customer cancels
}

// Service manages subscription records and billing provider interactions.
// It is the only writer of records: everything else reads them through
// Lookup or GetRecord.
type Service struct {
	store    Store
	provider BillingProvider
	prices   PriceMap
}

// NewService creates a subscription Service.
// Panics if store or provider is nil to fail fast during initialization.
func NewService(store Store, provider BillingProvider, prices PriceMap) *Service {
	if store == nil {
		panic("subscription: Store is required")
	}
	if provider == nil {
		panic("subscription: BillingProvider is required")
	}

	return &Service{
		store:    store,
		provider: provider,
		prices:   prices,
	}
}

// GetRecord retrieves a user's subscription record.
func (s *Service) GetRecord(ctx context.Context, userID uuid.UUID) (*Record, error) {
	return s.store.Get(ctx, userID)
}

// Lookup adapts the store to the entitlement module's lookup contract.
// A missing record is not an error: it maps to the free tier. Store failures
// propagate so the caller can fail closed.
func (s *Service) Lookup() entitlement.SubscriptionLookup {
	return func(ctx context.Context, userID uuid.UUID) (entitlement.PlanID, bool, error) {
		record, err := s.store.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrRecordNotFound) {
				return "", false, nil
			}
			return "", false, err
		}
		return entitlement.PlanID(record.PlanID), record.IsSubscribed(), nil
	}
}

// CreateCheckoutLink generates a hosted checkout link for a plan.
// The free tier needs no checkout: record absence already means free, so the
// caller is redirected straight to the success URL.
func (s *Service) CreateCheckoutLink(ctx context.Context, userID uuid.UUID, planID string, opts CheckoutOptions) (*CheckoutLink, error) {
	if planID == string(entitlement.PlanFree) {
		return &CheckoutLink{
			URL:       opts.SuccessURL,
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}, nil
	}

	priceID := s.prices.PriceFor(planID)
	if priceID == "" {
		return nil, errors.Join(ErrMissingPriceID,
			fmt.Errorf("no price configured for plan %q", planID))
	}

	return s.provider.CreateCheckoutLink(ctx, CheckoutRequest{
		PriceID:    priceID,
		UserID:     userID.String(),
		Email:      opts.Email,
		SuccessURL: opts.SuccessURL,
		CancelURL:  opts.CancelURL,
	})
}

// GetCustomerPortalLink returns a link to the provider's customer portal.
func (s *Service) GetCustomerPortalLink(ctx context.Context, userID uuid.UUID) (*PortalLink, error) {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record.ProviderSubID == "" {
		return nil, errors.Join(ErrNoPortalURL,
			errors.New("no provider subscription to manage"))
	}
	return s.provider.GetCustomerPortalLink(ctx, record)
}

// HandleWebhook processes incoming webhook events from the billing provider
// and updates the stored record accordingly. Unknown event types are ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(ctx, payload, signature)
	if err != nil {
		return err
	}

	if event.UserID == "" {
		// Events that are not tied to one of our users (e.g. price updates)
		// carry no custom data and are not ours to handle.
		return nil
	}
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID in webhook: %w", err)
	}

	now := time.Now().UTC()

	switch event.Type {
	case EventSubscriptionCreated, EventSubscriptionResumed:
		record, err := s.store.Get(ctx, userID)
		if errors.Is(err, ErrRecordNotFound) {
			record = &Record{UserID: userID, CreatedAt: now}
		} else if err != nil {
			return err
		}

		record.PlanID = s.planFromEvent(event)
		record.Subscribed = statusGrantsAccess(event.Status)
		record.PeriodEnd = event.PeriodEnd
		record.ProviderSubID = event.SubscriptionID
		record.CancelledAt = nil
		record.UpdatedAt = now
		if customerID, ok := event.Raw["customer_id"].(string); ok {
			record.ProviderCustomerID = customerID
		}

		return s.store.Save(ctx, record)

	case EventSubscriptionUpdated:
		record, err := s.store.Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("record not found for user %s: %w", userID, err)
		}

		record.PlanID = s.planFromEvent(event)
		record.Subscribed = statusGrantsAccess(event.Status)
		record.PeriodEnd = event.PeriodEnd
		record.UpdatedAt = now

		return s.store.Save(ctx, record)

	case EventSubscriptionCancelled:
		record, err := s.store.Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("record not found for user %s: %w", userID, err)
		}

		record.Subscribed = false
		record.CancelledAt = &now
		record.UpdatedAt = now

		return s.store.Save(ctx, record)

	case EventPaymentSucceeded:
		record, err := s.store.Get(ctx, userID)
		if errors.Is(err, ErrRecordNotFound) {
			// Renewal for a user we never saw; the subscription event that
			// creates the record is delivered separately.
			return nil
		} else if err != nil {
			return err
		}

		// A successful renewal restores access revoked by a failed payment
		// once Paddle's dunning recovers the charge.
		record.Subscribed = true
		if event.PeriodEnd != nil {
			record.PeriodEnd = event.PeriodEnd
		}
		record.UpdatedAt = now

		return s.store.Save(ctx, record)

	case EventPaymentFailed:
		record, err := s.store.Get(ctx, userID)
		if errors.Is(err, ErrRecordNotFound) {
			return nil
		} else if err != nil {
			return err
		}

		// Failed payment revokes paid access immediately rather than keeping
		// a grace period: granting unpaid premium access is the worse outcome.
		record.Subscribed = false
		record.UpdatedAt = now

		return s.store.Save(ctx, record)
	}

	return nil
}

// planFromEvent maps the event's price ID back to a catalog plan ID.
// An unknown price is stored verbatim: the resolver fails closed to free for
// plan IDs it does not recognize.
func (s *Service) planFromEvent(event *WebhookEvent) string {
	if plan := s.prices.PlanFor(event.PlanID); plan != "" {
		return plan
	}
	return event.PlanID
}

// statusGrantsAccess maps provider statuses to the subscribed flag.
// Subscription events carry "active"/"trialing"; transaction events carry the
// transaction's own status ("completed", "paid"), so a checkout transaction
// landing after the subscription event must not read as a revocation.
// Anything other than an explicitly good status denies paid access.
func statusGrantsAccess(status string) bool {
	switch status {
	case "active", "trialing", "completed", "paid":
		return true
	default:
		return false
	}
}
