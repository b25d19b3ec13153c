package billing

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/linkbio/modules/api"
	"github.com/dmitrymomot/linkbio/pkg/logger"
	"github.com/dmitrymomot/linkbio/pkg/subscription"
)

// maxWebhookBody bounds webhook payloads; Paddle events are a few KB.
const maxWebhookBody = 1 << 20

type handlers struct {
	subscriptions SubscriptionService
	entitlements  EntitlementService
	log           *slog.Logger
}

type checkoutRequest struct {
	PlanID     string `json:"plan_id"`
	Email      string `json:"email"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (h *handlers) checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	var req checkoutRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}
	if req.PlanID == "" {
		api.Error(w, http.StatusBadRequest, "missing_plan", "plan_id is required")
		return
	}

	link, err := h.subscriptions.CreateCheckoutLink(r.Context(), userID, req.PlanID, subscription.CheckoutOptions{
		Email:      req.Email,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrMissingPriceID):
			api.Error(w, http.StatusBadRequest, "unknown_plan", "no price configured for the requested plan")
		default:
			h.log.ErrorContext(r.Context(), "Checkout link creation failed",
				logger.Component("billing"), logger.UserID(userID), logger.Error(err))
			api.Error(w, http.StatusBadGateway, "billing_unavailable", "could not create checkout session")
		}
		return
	}

	api.JSON(w, http.StatusOK, checkoutResponse{URL: link.URL})
}

type portalResponse struct {
	URL              string `json:"url"`
	CancelURL        string `json:"cancel_url,omitempty"`
	UpdatePaymentURL string `json:"update_payment_url,omitempty"`
}

func (h *handlers) portal(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	link, err := h.subscriptions.GetCustomerPortalLink(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrRecordNotFound):
			api.Error(w, http.StatusNotFound, "no_subscription", "no subscription on file")
		default:
			h.log.ErrorContext(r.Context(), "Portal link retrieval failed",
				logger.Component("billing"), logger.UserID(userID), logger.Error(err))
			api.Error(w, http.StatusBadGateway, "billing_unavailable", "could not create portal session")
		}
		return
	}

	api.JSON(w, http.StatusOK, portalResponse{
		URL:              link.URL,
		CancelURL:        link.CancelURL,
		UpdatePaymentURL: link.UpdatePaymentURL,
	})
}

type subscriptionResponse struct {
	PlanID     string     `json:"plan_id"`
	Subscribed bool       `json:"subscribed"`
	PeriodEnd  *time.Time `json:"period_end,omitempty"`
	Cancelled  bool       `json:"cancelled"`
}

func (h *handlers) currentSubscription(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	record, err := h.subscriptions.GetRecord(r.Context(), userID)
	if err != nil {
		if errors.Is(err, subscription.ErrRecordNotFound) {
			api.Error(w, http.StatusNotFound, "no_subscription", "no subscription on file")
			return
		}
		h.log.ErrorContext(r.Context(), "Subscription record lookup failed",
			logger.Component("billing"), logger.UserID(userID), logger.Error(err))
		api.Error(w, http.StatusInternalServerError, "internal", "could not load subscription")
		return
	}

	api.JSON(w, http.StatusOK, subscriptionResponse{
		PlanID:     record.PlanID,
		Subscribed: record.IsSubscribed(),
		PeriodEnd:  record.PeriodEnd,
		Cancelled:  record.IsCancelled(),
	})
}

type capabilitiesResponse struct {
	PlanID            string `json:"plan_id"`
	LinkLimit         int64  `json:"link_limit"`
	CustomDomain      bool   `json:"custom_domain"`
	MultipleDomains   bool   `json:"multiple_domains"`
	AdvancedAnalytics bool   `json:"advanced_analytics"`
	AnalyticsExport   bool   `json:"analytics_export"`
	TeamCollaboration bool   `json:"team_collaboration"`
	APIAccess         bool   `json:"api_access"`
	WhiteLabel        bool   `json:"white_label"`
	LinkScheduling    bool   `json:"link_scheduling"`
	CustomThemes      bool   `json:"custom_themes"`
}

func (h *handlers) capabilities(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	// Lookup failures resolve to free-tier capabilities, so the response is
	// still valid; the error is only logged.
	caps, err := h.entitlements.EffectiveCapabilities(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Capability resolution degraded to free tier",
			logger.Component("billing"), logger.UserID(userID), logger.Error(err))
	}

	api.JSON(w, http.StatusOK, capabilitiesResponse{
		PlanID:            string(caps.PlanID),
		LinkLimit:         caps.LinkLimit,
		CustomDomain:      caps.CustomDomain,
		MultipleDomains:   caps.MultipleDomains,
		AdvancedAnalytics: caps.AdvancedAnalytics,
		AnalyticsExport:   caps.AnalyticsExport,
		TeamCollaboration: caps.TeamCollaboration,
		APIAccess:         caps.APIAccess,
		WhiteLabel:        caps.WhiteLabel,
		LinkScheduling:    caps.LinkScheduling,
		CustomThemes:      caps.CustomThemes,
	})
}

func (h *handlers) webhook(w http.ResponseWriter, r *http.Request) {
	signature := r.Header.Get("Paddle-Signature")
	if signature == "" {
		api.Error(w, http.StatusBadRequest, "missing_signature", "Paddle-Signature header is required")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid_body", "could not read request body")
		return
	}

	if err := h.subscriptions.HandleWebhook(r.Context(), payload, signature); err != nil {
		if errors.Is(err, subscription.ErrWebhookVerificationFailed) {
			api.Error(w, http.StatusBadRequest, "invalid_signature", "webhook signature verification failed")
			return
		}
		// Non-2xx makes Paddle retry the event later.
		h.log.ErrorContext(r.Context(), "Webhook processing failed",
			logger.Component("billing"), logger.Error(err))
		api.Error(w, http.StatusInternalServerError, "webhook_failed", "could not process webhook event")
		return
	}

	w.WriteHeader(http.StatusOK)
}
