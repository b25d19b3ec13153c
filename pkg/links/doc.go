// Package links manages the outbound links on a user's public page.
// Creation is gated by the plan's link quota and scheduled publishing by the
// link-scheduling capability; both checks go through the entitlement module
// so gating logic never leaks into handlers.
package links
