package outbound

import (
	"context"
	"time"
)

// RateLimiterPort defines sliding window rate limiting.
type RateLimiterPort interface {
	// Allow records one request for key and reports whether it fits in the window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// GetRemaining returns the requests still allowed in the window.
	GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}
