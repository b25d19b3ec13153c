// Package entitlement provides plan-based feature gating and link quotas.
// It is the single place where a stored plan ID is turned into concrete
// capabilities; UI and action handlers must never hard-code tier comparisons.
//
// The package is framework-free and pure by design: every policy call takes
// its inputs as explicit parameters, which keeps it trivially unit-testable
// and safe for concurrent use.
//
// Key concepts:
//
//   - Catalog: immutable map of plan IDs to Capabilities, loaded at startup
//   - Resolver: (plan ID, subscribed, isActiveAdmin) -> Capabilities
//   - Capabilities: resolved limits and feature flags, with quota arithmetic
//   - Service: fetches billing state via injected lookups, then resolves
//
// Basic usage:
//
//	catalog, err := entitlement.NewCatalog(ctx,
//	    entitlement.NewInMemSource(entitlement.DefaultPlans()))
//	if err != nil {
//	    // handle error
//	}
//
//	resolver := entitlement.NewResolver(catalog)
//	caps := resolver.Resolve(entitlement.PlanBasic, true, false)
//
//	if !caps.CanCreateLink(currentCount) {
//	    // deny: limit reached
//	}
//	remaining := caps.RemainingLinks(currentCount) // -1 means unlimited
//
// Resolution fails closed: unknown plan IDs, unsubscribed users and lookup
// failures all yield the free tier. An active staff grant forces enterprise
// capabilities regardless of billing state.
package entitlement
