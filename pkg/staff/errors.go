package staff

import "errors"

var (
	ErrGrantNotFound = errors.New("staff grant not found")
	ErrInvalidRole   = errors.New("invalid staff role")
)
