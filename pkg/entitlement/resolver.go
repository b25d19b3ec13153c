package entitlement

// Resolver maps stored billing state to an effective capability set.
// It is pure: no I/O, no errors for normal inputs, and it always returns a
// complete Capabilities value.
type Resolver struct {
	catalog  *Catalog
	override PlanID
}

// ResolverOption configures a Resolver instance.
type ResolverOption func(*Resolver)

// WithPlanOverride forces every non-staff resolution to the given plan.
// This is a test-only injection point for manual QA: wire it behind an
// environment check in the binary, never unconditionally. An override that
// names an unknown plan is ignored.
func WithPlanOverride(id PlanID) ResolverOption {
	return func(r *Resolver) {
		r.override = id
	}
}

// NewResolver creates a Resolver backed by the given catalog.
// Panics on a nil catalog to fail fast during initialization.
func NewResolver(catalog *Catalog, opts ...ResolverOption) *Resolver {
	if catalog == nil {
		panic("entitlement: Catalog is required")
	}

	r := &Resolver{catalog: catalog}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the effective capabilities for the given billing state.
//
// Precedence:
//  1. An active staff grant forces enterprise capabilities, regardless of
//     stored plan, subscription state, or the QA override.
//  2. The QA override, when set and known to the catalog.
//  3. Unsubscribed users and users without a plan get the free tier, even
//     when a stale plan ID is still stored.
//  4. Unknown plan IDs fall back to the free tier: fail closed, never open.
func (r *Resolver) Resolve(planID PlanID, subscribed, isActiveAdmin bool) Capabilities {
	if isActiveAdmin {
		return r.catalog.Enterprise()
	}

	if r.override != "" {
		if caps, ok := r.catalog.Get(r.override); ok {
			return caps
		}
	}

	if !subscribed || planID == "" {
		return r.catalog.Free()
	}

	caps, ok := r.catalog.Get(planID)
	if !ok {
		return r.catalog.Free()
	}
	return caps
}
