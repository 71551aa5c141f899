package quote

import "errors"

// Fetch failure kinds. The monitor treats all of them the same way
// (skip the alert, continue the tick) but logs them apart.
var (
	// ErrNotFound means the provider does not know the symbol.
	ErrNotFound = errors.New("symbol not found")
	// ErrRateLimited means the provider quota is exhausted.
	ErrRateLimited = errors.New("provider rate limited")
	// ErrUnavailable means a network or provider-side error.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrMalformed means the response could not be parsed.
	ErrMalformed = errors.New("malformed provider response")
)

// FailureReason classifies err into a short label for logs and metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "unavailable"
	}
}
