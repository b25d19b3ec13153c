package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// SubscriptionLookup fetches a user's stored billing state.
// Absence of a record is not an error: return an empty plan ID and
// subscribed=false. Errors are reserved for lookup failures.
type SubscriptionLookup func(ctx context.Context, userID uuid.UUID) (planID PlanID, subscribed bool, err error)

// AdminLookup reports whether the user holds an active staff grant.
type AdminLookup func(ctx context.Context, userID uuid.UUID) (bool, error)

// Service evaluates the effective capabilities for a user by combining the
// stored subscription record, the staff allow-list and the resolver.
// It is stateless and request-scoped: one resolve per gated action or view.
type Service struct {
	resolver      *Resolver
	subscriptions SubscriptionLookup
	admins        AdminLookup
}

// NewService creates an entitlement Service.
// Panics if any dependency is nil to fail fast during initialization.
func NewService(resolver *Resolver, subscriptions SubscriptionLookup, admins AdminLookup) *Service {
	if resolver == nil {
		panic("entitlement: Resolver is required")
	}
	if subscriptions == nil {
		panic("entitlement: SubscriptionLookup is required")
	}
	if admins == nil {
		panic("entitlement: AdminLookup is required")
	}

	return &Service{
		resolver:      resolver,
		subscriptions: subscriptions,
		admins:        admins,
	}
}

// EffectiveCapabilities resolves the capabilities the user currently has.
//
// Lookup failures fail closed: the free tier is returned together with the
// error so callers can deny the gated action without accidentally granting
// premium access on a transient outage.
func (s *Service) EffectiveCapabilities(ctx context.Context, userID uuid.UUID) (Capabilities, error) {
	isAdmin, err := s.admins(ctx, userID)
	if err != nil {
		return s.resolver.catalog.Free(), errors.Join(ErrLookupFailed, err)
	}

	// Staff short-circuit: no need to touch the subscription record.
	if isAdmin {
		return s.resolver.Resolve("", false, true), nil
	}

	planID, subscribed, err := s.subscriptions(ctx, userID)
	if err != nil {
		return s.resolver.catalog.Free(), errors.Join(ErrLookupFailed, err)
	}

	return s.resolver.Resolve(planID, subscribed, false), nil
}
