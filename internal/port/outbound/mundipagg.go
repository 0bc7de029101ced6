package outbound

import (
	"context"

	"github.com/mundipagg/gateway-core/internal/model"
)

// MundipaggPort defines the Mundipagg REST API operations.
type MundipaggPort interface {
	// CreateOrder submits an order. The key makes retried submissions idempotent.
	CreateOrder(ctx context.Context, order *model.PaymentOrder, idempotencyKey string) (*model.Order, error)

	// GetOrder fetches an order with its charges. Returns nil when it does not exist.
	GetOrder(ctx context.Context, mundipaggID string) (*model.Order, error)

	// CancelCharge cancels (or refunds) a charge and returns its new state.
	// The error message is the gateway's reason when the cancellation is refused.
	CancelCharge(ctx context.Context, chargeID string, amount int64) (*model.Charge, error)

	// GetSubscription fetches a subscription. Returns nil when it does not exist.
	GetSubscription(ctx context.Context, mundipaggID string) (*model.Subscription, error)
}
