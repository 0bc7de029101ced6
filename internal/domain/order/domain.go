package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	apperrors "github.com/mundipagg/gateway-core/internal/shared/errors"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	applog "github.com/mundipagg/gateway-core/internal/shared/logger"
	"github.com/mundipagg/gateway-core/internal/shared/money"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// OrderDomain defines the interface for order business logic.
type OrderDomain interface {
	// Platform synchronization
	SyncPlatformWith(ctx context.Context, order *model.Order, changeStatus bool) error
	ChangeOrderStatus(order *model.Order)
	UpdateAcquirerData(order *model.Order)

	// Gateway operations
	CreateOrderAtGateway(ctx context.Context, po *model.PlatformOrder, idempotencyKey string) (*model.Order, error)
	ExtractPaymentOrder(po *model.PlatformOrder) (*model.PaymentOrder, error)
	CancelAtGateway(ctx context.Context, order *model.Order) error
	CancelAtGatewayByPlatformOrder(ctx context.Context, po *model.PlatformOrder) error

	// Queries
	GetOrderByGatewayID(ctx context.Context, mundipaggID string) (*model.Order, error)
	GetOrderByPlatformCode(ctx context.Context, code string) (*model.Order, error)
}

// Config holds the store module switches used by the order domain.
type Config struct {
	AntifraudEnabled bool
	// ForceCreate keeps orders the gateway reported as failed.
	ForceCreate     bool
	ModuleVersion   string
	PlatformVersion string
	Recurrence      model.RecurrenceConfig
}

// orderDomain implements OrderDomain.
type orderDomain struct {
	gateway    outbound.MundipaggPort
	orderDB    outbound.OrderDatabasePort
	chargeDB   outbound.ChargeDatabasePort
	platformDB outbound.PlatformOrderDatabasePort
	notifier   outbound.CustomerNotifierPort
	i18n       *i18n.Localizer
	config     *Config
	orderLog   *applog.OrderLogger
	logger     *zap.Logger
}

// NewOrderDomain creates a new order domain service.
func NewOrderDomain(
	gateway outbound.MundipaggPort,
	orderDB outbound.OrderDatabasePort,
	chargeDB outbound.ChargeDatabasePort,
	platformDB outbound.PlatformOrderDatabasePort,
	notifier outbound.CustomerNotifierPort,
	localizer *i18n.Localizer,
	config *Config,
	logger *zap.Logger,
) OrderDomain {
	if config == nil {
		config = &Config{}
	}
	return &orderDomain{
		gateway:    gateway,
		orderDB:    orderDB,
		chargeDB:   chargeDB,
		platformDB: platformDB,
		notifier:   notifier,
		i18n:       localizer,
		config:     config,
		orderLog:   applog.NewOrderLogger(logger),
		logger:     logger,
	}
}

// ===== Platform synchronization =====

func (d *orderDomain) SyncPlatformWith(ctx context.Context, order *model.Order, changeStatus bool) error {
	po := order.PlatformOrder
	if po == nil {
		return ErrPlatformOrderNotFound
	}

	paid, canceled, refunded := order.Totals()

	po.TotalPaid = money.CentsToFloat(paid)
	po.BaseTotalPaid = money.CentsToFloat(paid)
	po.TotalCanceled = money.CentsToFloat(canceled)
	po.BaseTotalCanceled = money.CentsToFloat(canceled)
	po.TotalRefunded = money.CentsToFloat(refunded)
	po.BaseTotalRefunded = money.CentsToFloat(refunded)

	if changeStatus {
		d.ChangeOrderStatus(order)
	}

	if err := d.platformDB.Save(ctx, po); err != nil {
		return fmt.Errorf("save platform order: %w", err)
	}
	return nil
}

func (d *orderDomain) ChangeOrderStatus(order *model.Order) {
	po := order.PlatformOrder
	if po == nil {
		return
	}

	status := order.Status
	if status == model.OrderStatusPaid {
		status = model.OrderStatusProcessing
	}

	if po.State == model.OrderStateClosed {
		d.orderLog.OrderInfo(po.Code, "Order is closed, status not changed", zap.String("status", status.String()))
		return
	}

	po.Status = status
	d.orderLog.OrderInfo(po.Code, "Order status changed", zap.String("status", status.String()))
}

func (d *orderDomain) UpdateAcquirerData(order *model.Order) {
	po := order.PlatformOrder
	if po == nil {
		return
	}

	for _, charge := range order.Charges {
		tx := charge.LastTransaction()
		if tx == nil {
			continue
		}
		po.SetAcquirerInfo(&model.AcquirerInfo{
			ChargeID:  charge.MundipaggID,
			Name:      tx.AcquirerName,
			TID:       tx.AcquirerTID,
			NSU:       tx.AcquirerNSU,
			AuthCode:  tx.AcquirerAuthCode,
			Message:   tx.AcquirerMessage,
			Status:    tx.Status.String(),
			UpdatedAt: tx.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// ===== Gateway operations =====

func (d *orderDomain) CancelAtGateway(ctx context.Context, order *model.Order) error {
	stored, err := d.orderDB.FindByMundipaggID(ctx, order.MundipaggID)
	if err != nil {
		return fmt.Errorf("find order: %w", err)
	}
	if stored != nil {
		stored.PlatformOrder = order.PlatformOrder
		order = stored
	}

	if order.Status == model.OrderStatusCanceled {
		return nil
	}

	if err := d.attachPlatformOrder(ctx, order); err != nil {
		return err
	}
	po := order.PlatformOrder

	var failures []string
	for _, charge := range order.Charges {
		updated, err := d.gateway.CancelCharge(ctx, charge.MundipaggID, 0)
		if err != nil {
			failures = append(failures, fmt.Sprintf("<li>%s : %s</li>", charge.MundipaggID, err.Error()))
			continue
		}
		mergeCharge(charge, updated)
		if err := d.chargeDB.Save(ctx, charge); err != nil {
			return fmt.Errorf("save charge: %w", err)
		}
	}

	if len(failures) > 0 {
		msg := d.i18n.Dashboard(i18n.ChargesNotCanceled) + "<br /><ul>" + strings.Join(failures, "") + "</ul>"
		po.AddHistoryComment(msg, false)
		if err := d.platformDB.Save(ctx, po); err != nil {
			return fmt.Errorf("save platform order: %w", err)
		}
		d.orderLog.OrderInfo(po.Code, "Charges not canceled at gateway", zap.Int("failures", len(failures)))
		return fmt.Errorf("%w: %d of %d", ErrChargesNotCanceled, len(failures), len(order.Charges))
	}

	order.Status = model.OrderStatusCanceled
	po.Status = model.OrderStatusCanceled
	po.State = model.OrderStateCanceled

	if err := d.orderDB.Save(ctx, order); err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	notified, err := d.notifier.NotifyCustomer(ctx, po, d.i18n.Dashboard(i18n.NewOrderStatus, po.Status.Label()))
	if err != nil {
		d.logger.Warn("Failed to notify customer", zap.String("order_code", po.Code), zap.Error(err))
		notified = false
	}
	po.AddHistoryComment(d.i18n.Dashboard(i18n.OrderCanceledAt, order.MundipaggID), notified)

	if err := d.SyncPlatformWith(ctx, order, false); err != nil {
		return err
	}

	d.orderLog.OrderInfo(po.Code, "Order canceled at gateway", zap.String("mundipagg_id", order.MundipaggID))
	return nil
}

func (d *orderDomain) CancelAtGatewayByPlatformOrder(ctx context.Context, po *model.PlatformOrder) error {
	if po.MundipaggID == "" {
		return nil
	}

	order, err := d.gateway.GetOrder(ctx, po.MundipaggID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	order.PlatformOrder = po
	return d.CancelAtGateway(ctx, order)
}

func (d *orderDomain) CreateOrderAtGateway(ctx context.Context, po *model.PlatformOrder, idempotencyKey string) (*model.Order, error) {
	d.orderLog.OrderInfo(po.Code, "Creating order.", zap.String("grand_total", po.GrandTotal.StringFixed(2)))

	order, err := d.createOrderAtGateway(ctx, po, idempotencyKey)
	if err != nil {
		return nil, d.frontError(po, err)
	}
	return order, nil
}

func (d *orderDomain) createOrderAtGateway(ctx context.Context, po *model.PlatformOrder, idempotencyKey string) (*model.Order, error) {
	existing, err := d.platformDB.FindByCode(ctx, po.Code)
	if err != nil {
		return nil, fmt.Errorf("find platform order: %w", err)
	}
	if existing != nil {
		if existing.MundipaggID != "" {
			return nil, apperrors.Conflict(fmt.Sprintf("order %s already created at Mundipagg", po.Code))
		}
		po.ID = existing.ID
		po.History = existing.History
		po.CreatedAt = existing.CreatedAt
	}
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}

	po.State = model.OrderStateNew
	po.Status = model.OrderStatusPending

	paymentOrder, err := d.ExtractPaymentOrder(po)
	if err != nil {
		return nil, err
	}

	if idempotencyKey == "" {
		idempotencyKey = uuid.New().String()
	}
	resp, err := d.gateway.CreateOrder(ctx, paymentOrder, idempotencyKey)
	if err != nil {
		return nil, err
	}

	failed := resp.HasFailed()
	if failed && !d.config.ForceCreate {
		d.orderLog.OrderInfo(po.Code, "Can't create order. - Force Create Order: false | Order or charge status failed",
			zap.String("mundipagg_id", resp.MundipaggID))
		d.persistFailedCharges(ctx, resp)

		herr := newResponseErrorChain().Handle(resp)
		return nil, apperrors.NewAppError("ORDER_REFUSED", d.i18n.Dashboard(herr.Message), herr.Code, herr)
	}

	po.MundipaggID = resp.MundipaggID
	if err := d.platformDB.Save(ctx, po); err != nil {
		return nil, fmt.Errorf("save platform order: %w", err)
	}

	resp.Code = po.Code
	resp.PlatformOrder = po
	if err := d.handleCreatedOrder(ctx, resp); err != nil {
		return nil, err
	}

	if failed {
		return nil, apperrors.BadRequest(d.i18n.Dashboard(i18n.CantCreateOrder))
	}

	d.orderLog.OrderInfo(po.Code, "Order created at gateway",
		zap.String("mundipagg_id", resp.MundipaggID), zap.String("status", resp.Status.String()))
	return resp, nil
}

// persistFailedCharges keeps refused charges for later inspection. Storage
// failures are logged only; the refusal is what the caller needs.
func (d *orderDomain) persistFailedCharges(ctx context.Context, resp *model.Order) {
	for _, charge := range resp.Charges {
		if charge.Status != model.ChargeStatusFailed {
			continue
		}
		charge.OrderMundipaggID = resp.MundipaggID
		if err := d.chargeDB.Save(ctx, charge); err != nil {
			d.logger.Error("Failed to persist failed charge",
				zap.String("charge_id", charge.MundipaggID), zap.Error(err))
		}
	}
}

// frontError turns any creation failure into the message shown at checkout.
// Client errors already carry a customer facing message.
func (d *orderDomain) frontError(po *model.PlatformOrder, err error) error {
	d.orderLog.OrderError(po.Code, "Order creation failed", err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.StatusCode >= 400 && appErr.StatusCode < 500 {
		return appErr
	}

	status := apperrors.GetStatusCode(err)
	return apperrors.NewAppError("ORDER_NOT_CREATED", d.i18n.Dashboard(i18n.OrderCreationFailed, po.Code), status, err)
}

func (d *orderDomain) ExtractPaymentOrder(po *model.PlatformOrder) (*model.PaymentOrder, error) {
	paymentOrder := &model.PaymentOrder{
		Code:             po.Code,
		Amount:           money.FloatToCents(po.GrandTotal),
		Customer:         po.Customer,
		Items:            po.Items,
		Payments:         po.Payments,
		Shipping:         po.Shipping,
		AntifraudEnabled: d.config.AntifraudEnabled,
		Metadata: map[string]string{
			"moduleVersion":   d.config.ModuleVersion,
			"platformVersion": d.config.PlatformVersion,
		},
	}
	if paymentOrder.Customer != nil && paymentOrder.Customer.Type == "" {
		paymentOrder.Customer.Type = model.CustomerTypeIndividual
	}

	if !paymentOrder.IsPaymentSumCorrect() {
		d.orderLog.OrderInfo(po.Code, "The sum of payments is different than the order amount!",
			zap.Int64("order_amount", paymentOrder.Amount), zap.Int64("payments_total", paymentOrder.PaymentsTotal()))
		return nil, apperrors.NewAppError("PAYMENT_SUM_MISMATCH",
			d.i18n.Dashboard(i18n.PaymentSumMismatch), http.StatusBadRequest, ErrPaymentSumMismatch)
	}

	if err := d.checkRecurrenceRules(po); err != nil {
		return nil, err
	}

	return paymentOrder, nil
}

func (d *orderDomain) checkRecurrenceRules(po *model.PlatformOrder) error {
	rules := d.config.Recurrence
	if !rules.Enabled || !po.HasRecurrentItem() {
		return nil
	}

	recurrent := lo.CountBy(po.Items, func(item *model.Item) bool { return item.Recurrent })
	normal := len(po.Items) - recurrent

	if normal > 0 && !rules.PurchaseRecurrenceProductWithNormalProduct {
		return apperrors.NewAppError("RECURRENCE_CONFLICT",
			rules.ConflictMessageRecurrenceProductWithNormalProduct, http.StatusBadRequest, ErrRecurrenceConflict)
	}
	if recurrent > 1 && !rules.PurchaseRecurrenceProductWithRecurrenceProduct {
		return apperrors.NewAppError("RECURRENCE_CONFLICT",
			rules.ConflictMessageRecurrenceProductWithRecurrenceProduct, http.StatusBadRequest, ErrRecurrenceConflict)
	}
	return nil
}

// ===== Queries =====

func (d *orderDomain) GetOrderByGatewayID(ctx context.Context, mundipaggID string) (*model.Order, error) {
	order, err := d.orderDB.FindByMundipaggID(ctx, mundipaggID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := d.attachPlatformOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (d *orderDomain) GetOrderByPlatformCode(ctx context.Context, code string) (*model.Order, error) {
	po, err := d.platformDB.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find platform order: %w", err)
	}
	if po == nil {
		return nil, ErrPlatformOrderNotFound
	}

	order, err := d.orderDB.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		// Not submitted yet, or refused by the gateway.
		order = &model.Order{Code: po.Code, Status: po.Status}
	}
	order.PlatformOrder = po
	return order, nil
}

func (d *orderDomain) attachPlatformOrder(ctx context.Context, order *model.Order) error {
	if order.PlatformOrder != nil {
		return nil
	}
	po, err := d.platformDB.FindByCode(ctx, order.Code)
	if err != nil {
		return fmt.Errorf("find platform order: %w", err)
	}
	if po == nil {
		return ErrPlatformOrderNotFound
	}
	order.PlatformOrder = po
	return nil
}

// mergeCharge copies the gateway state of src onto the stored charge dst.
func mergeCharge(dst, src *model.Charge) {
	if src == nil {
		return
	}
	if src.Status != "" {
		dst.Status = src.Status
	}
	dst.PaidAmount = max(dst.PaidAmount, src.PaidAmount)
	dst.CanceledAmount = max(dst.CanceledAmount, src.CanceledAmount)
	dst.RefundedAmount = max(dst.RefundedAmount, src.RefundedAmount)
	for _, tx := range src.Transactions {
		dst.AddTransaction(tx)
	}
}
