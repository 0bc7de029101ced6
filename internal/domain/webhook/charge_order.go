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

// chargeOrderService handles charges of orders created through the API.
type chargeOrderService struct {
	*chargeHandler
	platformDB outbound.PlatformOrderDatabasePort
}

// NewChargeOrderService creates the charge service for plain order charges.
func NewChargeOrderService(
	orderDB outbound.OrderDatabasePort,
	platformDB outbound.PlatformOrderDatabasePort,
	chargeDB outbound.ChargeDatabasePort,
	orders order.OrderDomain,
	localizer *i18n.Localizer,
	logger *zap.Logger,
) ChargeService {
	return &chargeOrderService{
		chargeHandler: &chargeHandler{
			chargeDB: chargeDB,
			orderDB:  orderDB,
			orders:   orders,
			i18n:     localizer,
			logger:   logger.Named("charge_order"),
		},
		platformDB: platformDB,
	}
}

func (s *chargeOrderService) LoadOrder(ctx context.Context, hook *model.Webhook) (*model.Order, error) {
	orderID := hook.Charge.OrderMundipaggID
	if orderID == "" {
		return nil, apperrors.NewAppError("BAD_REQUEST", "Charge without order reference.", http.StatusBadRequest, ErrChargeWithoutOrderRef)
	}

	o, err := s.orderDB.FindByMundipaggID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if o == nil {
		return nil, orderNotFound(orderID)
	}

	po, err := s.platformDB.FindByCode(ctx, o.Code)
	if err != nil {
		return nil, fmt.Errorf("find platform order: %w", err)
	}
	if po == nil {
		return nil, orderNotFound(o.Code)
	}

	o.PlatformOrder = po
	return o, nil
}
