package webhook

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mundipagg/gateway-core/internal/domain/order"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	apperrors "github.com/mundipagg/gateway-core/internal/shared/errors"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	"go.uber.org/zap"
)

// chargeRecurrenceService handles charges billed by subscription invoices.
// The order it reconciles is rebuilt from the subscription on every
// webhook and only carries the charge being handled.
type chargeRecurrenceService struct {
	*chargeHandler
	gateway        outbound.MundipaggPort
	subscriptionDB outbound.SubscriptionDatabasePort
	platformDB     outbound.PlatformOrderDatabasePort
}

// NewChargeRecurrenceService creates the charge service for subscription charges.
func NewChargeRecurrenceService(
	gateway outbound.MundipaggPort,
	subscriptionDB outbound.SubscriptionDatabasePort,
	platformDB outbound.PlatformOrderDatabasePort,
	chargeDB outbound.ChargeDatabasePort,
	orders order.OrderDomain,
	localizer *i18n.Localizer,
	logger *zap.Logger,
) ChargeService {
	return &chargeRecurrenceService{
		chargeHandler: &chargeHandler{
			chargeDB:   chargeDB,
			orders:     orders,
			i18n:       localizer,
			recurrence: true,
			logger:     logger.Named("charge_recurrence"),
		},
		gateway:        gateway,
		subscriptionDB: subscriptionDB,
		platformDB:     platformDB,
	}
}

func (s *chargeRecurrenceService) LoadOrder(ctx context.Context, hook *model.Webhook) (*model.Order, error) {
	charge := hook.Charge

	sub, err := s.gateway.GetSubscription(ctx, charge.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperrors.NewAppError("SUBSCRIPTION_NOT_FOUND", "Code não foi encontrado",
			http.StatusBadRequest, ErrSubscriptionNotFound)
	}

	if sub.CurrentCycle != nil {
		start, end := sub.CurrentCycle.CycleStart, sub.CurrentCycle.CycleEnd
		charge.CycleStart = &start
		charge.CycleEnd = &end
	}

	code := sub.PlatformOrderCode
	local, err := s.subscriptionDB.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	if local == nil {
		local = sub
		if local.MundipaggID == "" {
			local.MundipaggID = charge.SubscriptionID
		}
		s.logger.Info("Subscription registered from gateway",
			zap.String("subscription_id", local.MundipaggID), zap.String("order_code", code))
	} else {
		local.Status = sub.Status
		if sub.CurrentCycle != nil {
			local.CurrentCycle = sub.CurrentCycle
		}
	}
	if err := s.subscriptionDB.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}

	po, err := s.platformDB.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find platform order: %w", err)
	}
	if po == nil {
		return nil, orderNotFound(code)
	}

	return &model.Order{
		Code:          code,
		Status:        model.ParseOrderStatus(po.Status.String()),
		PlatformOrder: po,
	}, nil
}

func orderNotFound(code string) error {
	return apperrors.NewAppError("NOT_FOUND", fmt.Sprintf("Order #%s not found.", code),
		http.StatusNotFound, ErrOrderNotFound)
}
