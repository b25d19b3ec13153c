// Package billing exposes the subscription lifecycle over HTTP: hosted
// checkout and customer portal links, the current subscription record, the
// caller's effective capabilities, and the Paddle webhook receiver that is
// the single writer of subscription records.
package billing
