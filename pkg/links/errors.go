package links

import "errors"

var (
	ErrLinkNotFound         = errors.New("link not found")
	ErrLinkLimitReached     = errors.New("link limit reached for current plan")
	ErrSchedulingNotAllowed = errors.New("link scheduling not available on current plan")
	ErrInvalidURL           = errors.New("link URL must be a valid http(s) URL")
	ErrEmptyTitle           = errors.New("link title is required")
	ErrInvalidReorder       = errors.New("reorder must list every link exactly once")
)
