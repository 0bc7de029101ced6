package order

import (
	"context"
	"fmt"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	"go.uber.org/zap"
)

// handleCreatedOrder stores an order accepted by the gateway and reflects it
// on the platform order.
func (d *orderDomain) handleCreatedOrder(ctx context.Context, order *model.Order) error {
	po := order.PlatformOrder

	for _, charge := range order.Charges {
		charge.OrderMundipaggID = order.MundipaggID
		if err := d.chargeDB.Save(ctx, charge); err != nil {
			return fmt.Errorf("save charge: %w", err)
		}
	}
	if err := d.orderDB.Save(ctx, order); err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	d.UpdateAcquirerData(order)
	po.AddHistoryComment(d.i18n.Dashboard(i18n.OrderCreatedAt, order.MundipaggID), false)

	switch order.Status {
	case model.OrderStatusPaid:
		po.State = model.OrderStateProcessing
	case model.OrderStatusPending:
		po.State = model.OrderStatePendingPayment
	case model.OrderStatusFailed, model.OrderStatusCanceled:
		po.State = model.OrderStateCanceled
	}
	d.logger.Debug("Created order state",
		zap.String("order_code", po.Code), zap.String("state", po.State.String()))

	return d.SyncPlatformWith(ctx, order, true)
}
