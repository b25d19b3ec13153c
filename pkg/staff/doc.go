// Package staff reads staff grants for entitlement overrides.
// Any active grant forces enterprise capabilities regardless of billing
// state; role hierarchy checks live in the admin back-office, not here.
package staff
