package device

// Validator normalises attribute writes. Setters route every bounded or
// enumerated write through the active policy, so swapping the policy for a
// strict (rejecting) validator changes write behaviour without touching
// call sites.
type Validator interface {
	// Int constrains a numeric value to the closed interval [lo, hi].
	Int(v, lo, hi int) int

	// Pick returns value if it is one of allowed, otherwise fallback.
	Pick(value string, allowed []string, fallback string) string
}

// ClampingValidator implements the silent-clamp policy: out-of-range numbers
// snap to the nearest bound, invalid enumerated values are replaced with the
// default. Setters built on it are total functions — they never fail.
type ClampingValidator struct{}

// Int clamps v to [lo, hi].
func (ClampingValidator) Int(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Pick returns value when it appears in allowed, fallback otherwise.
func (ClampingValidator) Pick(value string, allowed []string, fallback string) string {
	for _, a := range allowed {
		if a == value {
			return value
		}
	}
	return fallback
}

// Clamp is the active validation policy for all device setters.
var Clamp Validator = ClampingValidator{}
