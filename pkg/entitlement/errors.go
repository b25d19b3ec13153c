package entitlement

import "errors"

var (
	ErrInvalidCatalogConfiguration = errors.New("invalid plan catalog configuration")
	ErrFailedToLoadPlans           = errors.New("failed to load plan catalog")
	ErrLookupFailed                = errors.New("failed to look up subscription state")
)
