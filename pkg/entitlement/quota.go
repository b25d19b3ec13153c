package entitlement

// CanCreateLink reports whether one more link may be created given the
// current link count. The check is advisory: two concurrent creates can both
// pass against a stale count, so the store must re-check or constrain the
// limit authoritatively at write time.
func (c Capabilities) CanCreateLink(current int64) bool {
	if c.LinkLimit == Unlimited {
		return true
	}
	return clampCount(current) < c.LinkLimit
}

// RemainingLinks returns how many more links may be created, or Unlimited.
// Never returns a negative remaining count for limited plans.
func (c Capabilities) RemainingLinks(current int64) int64 {
	if c.LinkLimit == Unlimited {
		return Unlimited
	}
	return max(0, c.LinkLimit-clampCount(current))
}

// clampCount treats negative counts as zero. This is defensive arithmetic,
// not an input-validation boundary: a malformed count must not produce a
// negative remaining value or an accidental denial.
func clampCount(current int64) int64 {
	return max(0, current)
}
