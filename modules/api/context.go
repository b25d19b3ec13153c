package api

import (
	"context"

	"github.com/google/uuid"
)

type userIDContextKey struct{}

// SetUserIDToContext stores the authenticated user id in the context.
func SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// GetUserIDFromContext retrieves the authenticated user id from the context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDContextKey{}).(uuid.UUID)
	return id, ok
}
