package order

import "errors"

// Domain errors for order.
var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrPlatformOrderNotFound = errors.New("platform order not found")
	ErrChargesNotCanceled    = errors.New("some charges could not be canceled")
	ErrPaymentSumMismatch    = errors.New("payments sum differs from order amount")
	ErrRecurrenceConflict    = errors.New("recurrence product conflict")
)
