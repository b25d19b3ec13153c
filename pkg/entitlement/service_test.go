package entitlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/linkbio/pkg/entitlement"
)

func staticSubscription(planID entitlement.PlanID, subscribed bool) entitlement.SubscriptionLookup {
	return func(ctx context.Context, userID uuid.UUID) (entitlement.PlanID, bool, error) {
		return planID, subscribed, nil
	}
}

func staticAdmin(isAdmin bool) entitlement.AdminLookup {
	return func(ctx context.Context, userID uuid.UUID) (bool, error) {
		return isAdmin, nil
	}
}

func TestService_EffectiveCapabilities(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)
	resolver := entitlement.NewResolver(catalog)
	userID := uuid.New()

	t.Run("subscribed user gets plan capabilities", func(t *testing.T) {
		t.Parallel()

		svc := entitlement.NewService(resolver,
			staticSubscription(entitlement.PlanPremium, true), staticAdmin(false))

		caps, err := svc.EffectiveCapabilities(context.Background(), userID)

		require.NoError(t, err)
		premium, _ := catalog.Get(entitlement.PlanPremium)
		assert.Equal(t, premium, caps)
	})

	t.Run("no record resolves to free", func(t *testing.T) {
		t.Parallel()

		svc := entitlement.NewService(resolver,
			staticSubscription("", false), staticAdmin(false))

		caps, err := svc.EffectiveCapabilities(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, catalog.Free(), caps)
	})

	t.Run("staff grant forces enterprise without a record", func(t *testing.T) {
		t.Parallel()

		subscriptionCalled := false
		svc := entitlement.NewService(resolver,
			func(ctx context.Context, userID uuid.UUID) (entitlement.PlanID, bool, error) {
				subscriptionCalled = true
				return "", false, nil
			},
			staticAdmin(true))

		caps, err := svc.EffectiveCapabilities(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, catalog.Enterprise(), caps)
		assert.False(t, subscriptionCalled, "staff short-circuit must skip the subscription lookup")
	})

	t.Run("subscription lookup failure fails closed", func(t *testing.T) {
		t.Parallel()

		lookupErr := errors.New("connection timeout")
		svc := entitlement.NewService(resolver,
			func(ctx context.Context, userID uuid.UUID) (entitlement.PlanID, bool, error) {
				return "", false, lookupErr
			},
			staticAdmin(false))

		caps, err := svc.EffectiveCapabilities(context.Background(), userID)

		assert.ErrorIs(t, err, entitlement.ErrLookupFailed)
		assert.ErrorIs(t, err, lookupErr)
		assert.Equal(t, catalog.Free(), caps)
	})

	t.Run("admin lookup failure fails closed", func(t *testing.T) {
		t.Parallel()

		lookupErr := errors.New("connection refused")
		svc := entitlement.NewService(resolver,
			staticSubscription(entitlement.PlanEnterprise, true),
			func(ctx context.Context, userID uuid.UUID) (bool, error) {
				return false, lookupErr
			})

		caps, err := svc.EffectiveCapabilities(context.Background(), userID)

		assert.ErrorIs(t, err, entitlement.ErrLookupFailed)
		assert.Equal(t, catalog.Free(), caps)
	})

	t.Run("nil dependencies panic", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			entitlement.NewService(nil, staticSubscription("", false), staticAdmin(false))
		})
		assert.Panics(t, func() {
			entitlement.NewService(resolver, nil, staticAdmin(false))
		})
		assert.Panics(t, func() {
			entitlement.NewService(resolver, staticSubscription("", false), nil)
		})
	})
}
