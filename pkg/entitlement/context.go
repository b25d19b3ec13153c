package entitlement

import "context"

type capabilitiesCtxKey struct{}

// SetCapabilitiesToContext stores resolved capabilities in the context so a
// request pipeline can resolve once and gate many times.
func SetCapabilitiesToContext(ctx context.Context, caps Capabilities) context.Context {
	return context.WithValue(ctx, capabilitiesCtxKey{}, caps)
}

// GetCapabilitiesFromContext retrieves resolved capabilities from the context.
func GetCapabilitiesFromContext(ctx context.Context) (Capabilities, bool) {
	caps, ok := ctx.Value(capabilitiesCtxKey{}).(Capabilities)
	return caps, ok
}
