package gokeyset

// DefaultLimit and MaxLimit are the bounds of DefaultConfig.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// IsNormalizedLimit clamps limit into [1, maxLimit], substituting
// defaultLimit for non-positive values. The boolean result is true when
// limit was already valid.
func IsNormalizedLimit(limit, defaultLimit, maxLimit int) (int, bool) {
	if limit <= 0 {
		return min(defaultLimit, maxLimit), false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

// IsNormalizedLimitMax is IsNormalizedLimit with DefaultLimit. Like the other
// helpers below it uses the package defaults, not a loaded Config.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	return IsNormalizedLimit(limit, DefaultLimit, maxLimit)
}

// NormalizeLimitMax clamps limit into [1, maxLimit] with DefaultLimit for
// non-positive values.
func NormalizeLimitMax(limit int, maxLimit int) int {
	ret, _ := IsNormalizedLimitMax(limit, maxLimit)
	return ret
}

// NormalizeLimit clamps limit with the bounds of DefaultConfig. Use
// Paginator.GetLimit to see the limit a configured paginator will apply.
func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}
