package entitlement

// PlanID identifies a pricing tier.
type PlanID string

// Known pricing tiers. The catalog may carry additional tiers, but the
// resolver only requires free and enterprise to be present.
const (
	PlanFree       PlanID = "free"
	PlanBasic      PlanID = "basic"
	PlanPremium    PlanID = "premium"
	PlanEnterprise PlanID = "enterprise"
)

const (
	// Unlimited indicates no limit for a quota (-1 chosen for SQL compatibility).
	Unlimited int64 = -1
)

// Capabilities is the resolved, concrete set of limits and feature flags a
// user currently has after applying subscription state and staff overrides.
// It is a plain value: safe to copy, compare and pass across goroutines.
type Capabilities struct {
	PlanID PlanID

	// LinkLimit is the maximum number of links a user may have.
	// Unlimited (-1) disables the quota entirely.
	LinkLimit int64

	CustomDomain      bool
	MultipleDomains   bool
	AdvancedAnalytics bool
	AnalyticsExport   bool
	TeamCollaboration bool
	APIAccess         bool
	WhiteLabel        bool
	LinkScheduling    bool
	CustomThemes      bool
}
