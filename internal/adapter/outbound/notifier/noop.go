package notifier

import (
	"context"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"go.uber.org/zap"
)

// noOpNotifier logs the message instead of sending it. Used when no SMTP
// host is configured.
type noOpNotifier struct {
	logger *zap.Logger
}

// NewNoOpNotifier creates a notifier that never reaches the customer.
func NewNoOpNotifier(logger *zap.Logger) outbound.CustomerNotifierPort {
	return &noOpNotifier{logger: logger.Named("notifier")}
}

func (n *noOpNotifier) NotifyCustomer(_ context.Context, order *model.PlatformOrder, message string) (bool, error) {
	n.logger.Info("customer notification skipped",
		zap.String("order_code", order.Code),
		zap.String("message", message),
	)
	return false, nil
}

// Compile-time check
var _ outbound.CustomerNotifierPort = (*noOpNotifier)(nil)
