// Package pagination bounds list queries.
package pagination

// Limits for list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Limit returns limit clamped to [1, MaxLimit], using DefaultLimit when the
// caller asked for nothing.
func Limit(limit int) int {
	switch {
	case limit < 1:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
