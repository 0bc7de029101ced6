package subscription

import "errors"

// Domain errors for subscription.
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrMissingGatewayID     = errors.New("subscription has no gateway id")
)
