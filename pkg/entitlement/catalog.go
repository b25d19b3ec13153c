package entitlement

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Source defines how plan definitions are loaded into the catalog.
type Source interface {
	Load(ctx context.Context) (map[PlanID]Capabilities, error)
}

// Catalog is the single source of truth for plan capabilities across the
// whole application. It is immutable after construction and safe for
// unsynchronized concurrent reads.
//
// Every feature gate must go through the catalog via a Resolver instead of
// hard-coding tier comparisons, so gating stays centralized and testable.
type Catalog struct {
	plans map[PlanID]Capabilities
}

// NewCatalog loads plan definitions from the given source and validates them.
// The catalog must contain the free and enterprise tiers: free is the
// fail-closed fallback and enterprise is the staff override target.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		panic("entitlement: Source is required")
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	return &Catalog{plans: plans}, nil
}

// Get returns the capabilities for a plan ID.
func (c *Catalog) Get(id PlanID) (Capabilities, bool) {
	caps, ok := c.plans[id]
	return caps, ok
}

// Free returns the free tier capabilities, the least-privileged set.
func (c *Catalog) Free() Capabilities {
	return c.plans[PlanFree]
}

// Enterprise returns the enterprise tier capabilities, the highest set.
func (c *Catalog) Enterprise() Capabilities {
	return c.plans[PlanEnterprise]
}

// PlanIDs returns all catalog plan IDs in lexical order.
func (c *Catalog) PlanIDs() []PlanID {
	ids := make([]PlanID, 0, len(c.plans))
	for id := range c.plans {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// validatePlans ensures plan definitions are internally consistent.
// Catches configuration errors at startup rather than at gate-check time.
func validatePlans(plans map[PlanID]Capabilities) error {
	if _, ok := plans[PlanFree]; !ok {
		return errors.Join(ErrInvalidCatalogConfiguration,
			errors.New("catalog must define the free tier"))
	}
	if _, ok := plans[PlanEnterprise]; !ok {
		return errors.Join(ErrInvalidCatalogConfiguration,
			errors.New("catalog must define the enterprise tier"))
	}

	for id, caps := range plans {
		if caps.PlanID != id {
			return errors.Join(ErrInvalidCatalogConfiguration,
				fmt.Errorf("plan ID mismatch: map key %s != plan ID %s", id, caps.PlanID))
		}
		if caps.LinkLimit < Unlimited {
			return errors.Join(ErrInvalidCatalogConfiguration,
				fmt.Errorf("plan %s has invalid link limit: %d", id, caps.LinkLimit))
		}
	}

	return nil
}

// DefaultPlans returns the standard four-tier catalog.
// The free link limit of 5 is the single documented default.
func DefaultPlans() map[PlanID]Capabilities {
	return map[PlanID]Capabilities{
		PlanFree: {
			PlanID:    PlanFree,
			LinkLimit: 5,
		},
		PlanBasic: {
			PlanID:       PlanBasic,
			LinkLimit:    25,
			CustomDomain: true,
			CustomThemes: true,
		},
		PlanPremium: {
			PlanID:            PlanPremium,
			LinkLimit:         100,
			CustomDomain:      true,
			CustomThemes:      true,
			AdvancedAnalytics: true,
			AnalyticsExport:   true,
			LinkScheduling:    true,
			APIAccess:         true,
		},
		PlanEnterprise: {
			PlanID:            PlanEnterprise,
			LinkLimit:         Unlimited,
			CustomDomain:      true,
			MultipleDomains:   true,
			CustomThemes:      true,
			AdvancedAnalytics: true,
			AnalyticsExport:   true,
			LinkScheduling:    true,
			APIAccess:         true,
			TeamCollaboration: true,
			WhiteLabel:        true,
		},
	}
}
