package webhook

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mundipagg/gateway-core/internal/domain/order"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	"go.uber.org/zap"
)

// ChargeService applies charge webhooks to the order the charge belongs to.
type ChargeService interface {
	// LoadOrder resolves the order, with its platform order, targeted by the webhook.
	LoadOrder(ctx context.Context, hook *model.Webhook) (*model.Order, error)

	// HandlePaid handles paid, overpaid and underpaid charges.
	HandlePaid(ctx context.Context, hook *model.Webhook, order *model.Order) (*model.WebhookResult, error)

	HandlePartialCanceled(ctx context.Context, hook *model.Webhook, order *model.Order) (*model.WebhookResult, error)
	HandleRefunded(ctx context.Context, hook *model.Webhook, order *model.Order) (*model.WebhookResult, error)
}

// chargeHandler holds the charge reconciliation shared by subscription and
// plain order charges.
type chargeHandler struct {
	chargeDB outbound.ChargeDatabasePort
	// orderDB is nil for subscription charges, whose order is not stored.
	orderDB    outbound.OrderDatabasePort
	orders     order.OrderDomain
	i18n       *i18n.Localizer
	recurrence bool
	logger     *zap.Logger
}

func (h *chargeHandler) HandlePaid(ctx context.Context, hook *model.Webhook, o *model.Order) (*model.WebhookResult, error) {
	charge, added, err := h.mergeCharge(ctx, hook)
	if err != nil {
		return nil, err
	}

	if charge.Status == model.ChargeStatusCanceled {
		if err := h.chargeDB.Save(ctx, charge); err != nil {
			return nil, fmt.Errorf("save charge: %w", err)
		}
		h.logger.Warn("Payment received for canceled charge",
			zap.String("charge_id", charge.MundipaggID), zap.String("hook_id", hook.HookID))
		return ok(fmt.Sprintf("Charge %s is canceled. Payment ignored.", charge.MundipaggID)), nil
	}

	paidAmount := hook.Charge.PaidAmount
	if hook.Transaction != nil {
		paidAmount = hook.Transaction.PaidAmount
	}

	if !added && charge.Status.IsPaymentStatus() && charge.PaidAmount == paidAmount {
		return h.alreadyApplied(hook, charge), nil
	}

	if charge.Status != model.ChargeStatusPaid {
		if err := charge.Pay(paidAmount); err != nil {
			return nil, fmt.Errorf("pay charge: %w", err)
		}
	}
	if charge.PaidAmount == 0 {
		charge.PaidAmount = paidAmount
	}

	if err := h.chargeDB.Save(ctx, charge); err != nil {
		return nil, fmt.Errorf("save charge: %w", err)
	}

	o.AddCharge(charge)
	if h.recurrence {
		o.Status = model.OrderStatusPaid
	} else {
		o.ApplyStatusFromCharges()
	}

	return h.finish(ctx, hook, o, charge, true)
}

func (h *chargeHandler) HandlePartialCanceled(ctx context.Context, hook *model.Webhook, o *model.Order) (*model.WebhookResult, error) {
	charge, _, err := h.mergeCharge(ctx, hook)
	if err != nil {
		return nil, err
	}
	if cancellationReflected(charge, hook.Charge) {
		return h.alreadyApplied(hook, charge), nil
	}

	// Without a transaction there is no new amount to apply.
	if hook.Transaction != nil {
		charge.Cancel(hook.Transaction.Amount)
	}

	return h.applyCancellation(ctx, hook, o, charge)
}

func (h *chargeHandler) HandleRefunded(ctx context.Context, hook *model.Webhook, o *model.Order) (*model.WebhookResult, error) {
	if o.Status == model.OrderStatusCanceled {
		return ok("It is not possible to refund a charge of an order that was canceled."), nil
	}

	charge, _, err := h.mergeCharge(ctx, hook)
	if err != nil {
		return nil, err
	}
	if cancellationReflected(charge, hook.Charge) {
		return h.alreadyApplied(hook, charge), nil
	}

	amount := charge.Amount
	if hook.Transaction != nil {
		amount = hook.Transaction.Amount
	}
	charge.Cancel(amount)

	return h.applyCancellation(ctx, hook, o, charge)
}

func (h *chargeHandler) applyCancellation(ctx context.Context, hook *model.Webhook, o *model.Order, charge *model.Charge) (*model.WebhookResult, error) {
	if err := h.chargeDB.Save(ctx, charge); err != nil {
		return nil, fmt.Errorf("save charge: %w", err)
	}

	o.AddCharge(charge)
	changeStatus := false
	if !h.recurrence {
		o.ApplyStatusFromCharges()
		changeStatus = true
	}

	return h.finish(ctx, hook, o, charge, changeStatus)
}

// finish writes the audit trail, syncs the platform order and answers the gateway.
func (h *chargeHandler) finish(ctx context.Context, hook *model.Webhook, o *model.Order, charge *model.Charge, changeStatus bool) (*model.WebhookResult, error) {
	po := o.PlatformOrder
	po.AddHistoryComment(PrepareHistoryComment(h.i18n, charge), false)
	po.AddHistoryComment(h.i18n.Dashboard(i18n.WebhookReceived, hook.HookID, hook.Type), false)

	if h.orderDB != nil {
		if err := h.orderDB.Save(ctx, o); err != nil {
			return nil, fmt.Errorf("save order: %w", err)
		}
	}

	if err := h.orders.SyncPlatformWith(ctx, o, changeStatus); err != nil {
		return nil, err
	}

	h.logger.Info("Charge webhook applied",
		zap.String("hook_id", hook.HookID),
		zap.String("type", hook.Type),
		zap.String("charge_id", charge.MundipaggID),
		zap.String("charge_status", charge.Status.String()),
		zap.String("order_code", po.Code),
	)

	return ok(PrepareReturnMessage(charge)), nil
}

// mergeCharge loads the stored charge (locked for the running transaction)
// and stores the webhook's last transaction on it. added is false when the
// charge already held that transaction.
func (h *chargeHandler) mergeCharge(ctx context.Context, hook *model.Webhook) (charge *model.Charge, added bool, err error) {
	incoming := hook.Charge

	stored, err := h.chargeDB.FindByMundipaggID(ctx, incoming.MundipaggID)
	if err != nil {
		return nil, false, fmt.Errorf("find charge: %w", err)
	}

	charge = incoming
	if stored != nil {
		charge = stored
		if charge.OrderMundipaggID == "" {
			charge.OrderMundipaggID = incoming.OrderMundipaggID
		}
		if incoming.CycleStart != nil {
			charge.CycleStart = incoming.CycleStart
			charge.CycleEnd = incoming.CycleEnd
		}
	}

	return charge, charge.AddTransaction(hook.Transaction), nil
}

// cancellationReflected reports whether the stored charge already carries the
// refunded or canceled total the gateway reports on incoming.
func cancellationReflected(stored, incoming *model.Charge) bool {
	if stored == incoming {
		return false
	}
	if stored.Status.IsPaymentStatus() || stored.PaidAmount > 0 {
		return incoming.RefundedAmount > 0 && stored.RefundedAmount >= incoming.RefundedAmount
	}
	return incoming.CanceledAmount > 0 && stored.CanceledAmount >= incoming.CanceledAmount
}

func (h *chargeHandler) alreadyApplied(hook *model.Webhook, charge *model.Charge) *model.WebhookResult {
	h.logger.Info("Charge state already applied",
		zap.String("hook_id", hook.HookID),
		zap.String("type", hook.Type),
		zap.String("charge_id", charge.MundipaggID),
	)
	return ok(PrepareReturnMessage(charge))
}

func ok(message string) *model.WebhookResult {
	return &model.WebhookResult{Message: message, Code: http.StatusOK}
}
