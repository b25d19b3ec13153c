package subscription

import (
	"context"
	"time"
)

// BillingProvider defines the minimal interface for payment provider
// integrations. The provider handles all payment complexity through hosted
// checkouts and customer portals; this module never touches card data.
//
// Implementations should use official provider SDKs and absorb
// provider-specific quirks internally.
type BillingProvider interface {
	// CreateCheckoutLink creates a hosted checkout session.
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)

	// GetCustomerPortalLink returns a temporary link to the customer portal
	// where users can update payment methods, cancel, or change plans.
	GetCustomerPortalLink(ctx context.Context, record *Record) (*PortalLink, error)

	// ParseWebhook validates and parses incoming webhook data.
	// Must verify the signature to prevent webhook spoofing.
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

// CheckoutRequest contains data needed to create a checkout session.
type CheckoutRequest struct {
	PriceID    string // provider's price/plan identifier
	UserID     string // our internal user ID, round-tripped via custom data
	Email      string // optional billing email
	SuccessURL string // redirect after successful payment
	CancelURL  string // redirect if the customer bails out
}

// CheckoutLink represents a hosted checkout session.
type CheckoutLink struct {
	URL       string
	SessionID string
	ExpiresAt time.Time
}

// PortalLink represents a customer portal session.
type PortalLink struct {
	URL              string // pre-authenticated customer portal URL
	CancelURL        string // direct link to the cancel flow, when available
	UpdatePaymentURL string // direct link to the payment method flow, when available
	ExpiresAt        time.Time
}

// WebhookEvent represents a normalized webhook event from the billing provider.
type WebhookEvent struct {
	Type           EventType  // normalized event type
	ProviderEvent  string     // original provider event name
	SubscriptionID string     // provider's subscription ID
	UserID         string     // our user ID from custom data
	Status         string     // provider's subscription status
	PlanID         string     // the plan/price they subscribed to
	PeriodEnd      *time.Time // end of the current billing period, when present
	Raw            map[string]any
}

// EventType represents the normalized billing event type.
// Each provider implementation maps its specific events to these.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionUpdated   EventType = "subscription_updated"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventSubscriptionResumed   EventType = "subscription_resumed"

	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
)
