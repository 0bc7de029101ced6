package domain

import (
	"github.com/mundipagg/gateway-core/internal/domain/order"
	"github.com/mundipagg/gateway-core/internal/domain/subscription"
	"github.com/mundipagg/gateway-core/internal/domain/webhook"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	"go.uber.org/zap"
)

// Domain holds all domain services.
// This is the central registry for all business logic.
type Domain struct {
	// Order handles order creation, cancellation and platform sync.
	Order order.OrderDomain

	// Webhook applies gateway notifications to stored charges and orders.
	Webhook webhook.WebhookDomain

	// Subscription handles recurrence subscription queries.
	Subscription subscription.SubscriptionDomain
}

// OutboundPorts holds all outbound port implementations.
type OutboundPorts struct {
	Gateway    outbound.MundipaggPort
	Transactor outbound.TransactorPort
	Notifier   outbound.CustomerNotifierPort

	ChargeDB        outbound.ChargeDatabasePort
	OrderDB         outbound.OrderDatabasePort
	PlatformOrderDB outbound.PlatformOrderDatabasePort
	SubscriptionDB  outbound.SubscriptionDatabasePort
	WebhookEventDB  outbound.WebhookEventDatabasePort
}

// NewDomain creates domain services with dependencies.
func NewDomain(ports *OutboundPorts, orderConfig *order.Config, localizer *i18n.Localizer, logger *zap.Logger) *Domain {
	orderDomain := order.NewOrderDomain(
		ports.Gateway,
		ports.OrderDB,
		ports.ChargeDB,
		ports.PlatformOrderDB,
		ports.Notifier,
		localizer,
		orderConfig,
		logger.Named("order"),
	)

	webhookLogger := logger.Named("webhook")
	recurrence := webhook.NewChargeRecurrenceService(
		ports.Gateway,
		ports.SubscriptionDB,
		ports.PlatformOrderDB,
		ports.ChargeDB,
		orderDomain,
		localizer,
		webhookLogger,
	)
	orders := webhook.NewChargeOrderService(
		ports.OrderDB,
		ports.PlatformOrderDB,
		ports.ChargeDB,
		orderDomain,
		localizer,
		webhookLogger,
	)

	return &Domain{
		Order: orderDomain,
		Webhook: webhook.NewWebhookDomain(
			ports.WebhookEventDB,
			ports.Transactor,
			recurrence,
			orders,
			webhookLogger,
		),
		Subscription: subscription.NewSubscriptionDomain(
			ports.SubscriptionDB,
			ports.Gateway,
			logger.Named("subscription"),
		),
	}
}
