// Package subscription manages billing state for the link-in-bio product.
//
// A Record captures a user's current plan, subscribed flag and paid period
// end; the billing provider's webhook handler is its only writer. Everyone
// else reads records through the Store interface or the entitlement lookup
// adapter, which translates record absence into the free tier.
//
// The billing state machine itself (proration, dunning, retries) lives with
// the provider; this package only mirrors the outcome into one row per user.
//
// Components:
//
//   - Record/Store: one record per user, postgres and in-memory stores,
//     plus a Redis read-through cache decorator
//   - BillingProvider: hosted checkout, customer portal, webhook parsing;
//     PaddleProvider is the bundled implementation
//   - Service: checkout/portal links, webhook handling, entitlement lookup
package subscription
