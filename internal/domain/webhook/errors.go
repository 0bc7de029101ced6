package webhook

import "errors"

// Domain errors for webhook.
var (
	ErrInvalidWebhook        = errors.New("invalid webhook")
	ErrMissingCharge         = errors.New("webhook without charge data")
	ErrOrderNotFound         = errors.New("order not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrChargeWithoutOrderRef = errors.New("charge without order reference")
)
