package subscription

import "errors"

var (
	ErrRecordNotFound = errors.New("subscription record not found")
	ErrProviderError  = errors.New("billing provider error")

	ErrMissingAPIKey              = errors.New("billing provider API key is required")
	ErrMissingWebhookSecret       = errors.New("billing provider webhook secret is required")
	ErrInvalidProviderEnvironment = errors.New("invalid billing provider environment")
	ErrWebhookVerificationFailed  = errors.New("webhook signature verification failed")
	ErrNoCheckoutURL              = errors.New("no checkout URL returned from provider")
	ErrNoPortalURL                = errors.New("no portal URL returned from provider")
	ErrMissingUserID              = errors.New("user ID is required")
	ErrMissingPriceID             = errors.New("price ID is required")
)
