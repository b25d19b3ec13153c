package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle billing provider.
type PaddleConfig struct {
	APIKey        string `env:"PADDLE_API_KEY,required"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleProvider implements BillingProvider for Paddle.
type PaddleProvider struct {
	client   *paddle.SDK
	verifier *paddle.WebhookVerifier
}

// NewPaddleProvider creates a new Paddle billing provider.
func NewPaddleProvider(cfg PaddleConfig) (*PaddleProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(cfg.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(cfg.APIKey)
	case "production", "":
		client, err = paddle.New(cfg.APIKey)
	default:
		return nil, errors.Join(ErrInvalidProviderEnvironment,
			fmt.Errorf("unknown environment %q", cfg.Environment))
	}
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}

	return &PaddleProvider{
		client:   client,
		verifier: paddle.NewWebhookVerifier(cfg.WebhookSecret),
	}, nil
}

// CreateCheckoutLink creates a hosted checkout session in Paddle.
func (p *PaddleProvider) CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error) {
	if req.PriceID == "" {
		return nil, ErrMissingPriceID
	}
	if req.UserID == "" {
		return nil, ErrMissingUserID
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  req.PriceID,
		Quantity: 1,
	})

	// The user ID rides along as custom data so the webhook handler can map
	// the provider event back to our user.
	transactionReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"user_id": req.UserID,
		},
	}

	if req.Email != "" {
		transactionReq.CustomData["email"] = req.Email
	}

	if req.SuccessURL != "" {
		transactionReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(req.SuccessURL),
		}
	}

	transaction, err := p.client.TransactionsClient.CreateTransaction(ctx, transactionReq)
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}

	if transaction.Checkout == nil || transaction.Checkout.URL == nil {
		return nil, ErrNoCheckoutURL
	}

	return &CheckoutLink{
		URL:       *transaction.Checkout.URL,
		SessionID: transaction.ID,
		// Paddle checkout links typically expire in 24 hours.
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

// GetCustomerPortalLink returns a link to Paddle's customer portal.
func (p *PaddleProvider) GetCustomerPortalLink(ctx context.Context, record *Record) (*PortalLink, error) {
	if record == nil || record.ProviderSubID == "" {
		return nil, ErrNoPortalURL
	}

	customerID := record.ProviderCustomerID
	if customerID == "" {
		customerID = record.UserID.String()
	}

	portalSession, err := p.client.CustomerPortalSessionsClient.CreateCustomerPortalSession(ctx,
		&paddle.CreateCustomerPortalSessionRequest{
			CustomerID:      customerID,
			SubscriptionIDs: []string{record.ProviderSubID},
		})
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}

	link := &PortalLink{
		URL: portalSession.URLs.General.Overview,
		// Portal links typically expire in 24 hours.
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	for _, subURL := range portalSession.URLs.Subscriptions {
		if subURL.ID != record.ProviderSubID {
			continue
		}
		link.CancelURL = subURL.CancelSubscription
		link.UpdatePaymentURL = subURL.UpdateSubscriptionPaymentMethod
		break
	}

	if link.URL == "" {
		return nil, ErrNoPortalURL
	}
	return link, nil
}

// ParseWebhook validates and parses incoming webhook data from Paddle.
func (p *PaddleProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	// The Paddle verifier works on *http.Request, so wrap the raw payload.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}
	req.Header.Set("Paddle-Signature", signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrWebhookVerificationFailed, err)
	}
	if !valid {
		return nil, ErrWebhookVerificationFailed
	}

	var paddleEvent struct {
		EventID   string         `json:"event_id"`
		EventType string         `json:"event_type"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &paddleEvent); err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}

	event := &WebhookEvent{
		Type:          mapPaddleEventType(paddleEvent.EventType),
		ProviderEvent: paddleEvent.EventType,
		Raw:           paddleEvent.Data,
	}

	switch {
	case strings.HasPrefix(paddleEvent.EventType, "subscription."):
		if subID, ok := paddleEvent.Data["id"].(string); ok {
			event.SubscriptionID = subID
		}
		event.PlanID = paddlePriceIDFromItems(paddleEvent.Data, "price")
		event.PeriodEnd = paddlePeriodEnd(paddleEvent.Data)

	case strings.HasPrefix(paddleEvent.EventType, "transaction."):
		if txnID, ok := paddleEvent.Data["id"].(string); ok {
			event.SubscriptionID = txnID
		}
		// Prefer the linked subscription ID over the transaction ID.
		if subID, ok := paddleEvent.Data["subscription_id"].(string); ok {
			event.SubscriptionID = subID
		}
		event.PlanID = paddlePriceIDFromItems(paddleEvent.Data, "price_id")
	}

	if status, ok := paddleEvent.Data["status"].(string); ok {
		event.Status = status
	}
	if customData, ok := paddleEvent.Data["custom_data"].(map[string]any); ok {
		if userID, ok := customData["user_id"].(string); ok {
			event.UserID = userID
		}
	}
	if customerID, ok := paddleEvent.Data["customer_id"].(string); ok {
		if event.Raw == nil {
			event.Raw = map[string]any{}
		}
		event.Raw["customer_id"] = customerID
	}

	return event, nil
}

// paddlePriceIDFromItems digs the price ID out of the first line item.
// Subscription events nest it under "price", transaction events flatten it
// to "price_id".
func paddlePriceIDFromItems(data map[string]any, key string) string {
	items, ok := data["items"].([]any)
	if !ok || len(items) == 0 {
		return ""
	}
	item, ok := items[0].(map[string]any)
	if !ok {
		return ""
	}

	if key == "price" {
		price, ok := item["price"].(map[string]any)
		if !ok {
			return ""
		}
		priceID, _ := price["id"].(string)
		return priceID
	}

	priceID, _ := item[key].(string)
	return priceID
}

// paddlePeriodEnd extracts the current billing period end, when present.
func paddlePeriodEnd(data map[string]any) *time.Time {
	period, ok := data["current_billing_period"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := period["ends_at"].(string)
	if !ok {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	ts = ts.UTC()
	return &ts
}

// mapPaddleEventType maps Paddle event names to internal event types.
func mapPaddleEventType(paddleEvent string) EventType {
	switch paddleEvent {
	case "transaction.completed", "subscription.created":
		return EventSubscriptionCreated
	case "subscription.updated":
		return EventSubscriptionUpdated
	case "subscription.canceled":
		return EventSubscriptionCancelled
	case "subscription.resumed":
		return EventSubscriptionResumed
	case "transaction.payment_succeeded":
		return EventPaymentSucceeded
	case "transaction.payment_failed":
		return EventPaymentFailed
	default:
		// Pass unmapped events through so callers can log them.
		return EventType(paddleEvent)
	}
}
