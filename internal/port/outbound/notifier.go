package outbound

import (
	"context"

	"github.com/mundipagg/gateway-core/internal/model"
)

// CustomerNotifierPort sends order updates to the store customer.
type CustomerNotifierPort interface {
	// NotifyCustomer reports whether the customer was notified.
	NotifyCustomer(ctx context.Context, order *model.PlatformOrder, message string) (bool, error)
}
