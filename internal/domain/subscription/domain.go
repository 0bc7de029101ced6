package subscription

import (
	"context"
	"fmt"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"github.com/mundipagg/gateway-core/internal/utils/pagination"
	"go.uber.org/zap"
)

// SubscriptionDomain defines the interface for subscription queries.
type SubscriptionDomain interface {
	List(ctx context.Context, limit int, listDisabled bool) ([]*model.Subscription, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*model.Subscription, error)
	GetByCode(ctx context.Context, code string) (*model.Subscription, error)

	// Refresh pulls the status and current cycle from the gateway.
	Refresh(ctx context.Context, code string) (*model.Subscription, error)
}

type subscriptionDomain struct {
	subscriptionDB outbound.SubscriptionDatabasePort
	gateway        outbound.MundipaggPort
	logger         *zap.Logger
}

// NewSubscriptionDomain creates a new subscription domain service.
func NewSubscriptionDomain(
	subscriptionDB outbound.SubscriptionDatabasePort,
	gateway outbound.MundipaggPort,
	logger *zap.Logger,
) SubscriptionDomain {
	return &subscriptionDomain{
		subscriptionDB: subscriptionDB,
		gateway:        gateway,
		logger:         logger,
	}
}

func (d *subscriptionDomain) List(ctx context.Context, limit int, listDisabled bool) ([]*model.Subscription, error) {
	limit = pagination.Limit(limit)

	subs, err := d.subscriptionDB.List(ctx, limit, listDisabled)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

func (d *subscriptionDomain) ListByCustomer(ctx context.Context, customerID string) ([]*model.Subscription, error) {
	subs, err := d.subscriptionDB.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find subscriptions by customer: %w", err)
	}
	return subs, nil
}

func (d *subscriptionDomain) GetByCode(ctx context.Context, code string) (*model.Subscription, error) {
	sub, err := d.subscriptionDB.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

func (d *subscriptionDomain) Refresh(ctx context.Context, code string) (*model.Subscription, error) {
	local, err := d.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if local.MundipaggID == "" {
		return nil, ErrMissingGatewayID
	}

	remote, err := d.gateway.GetSubscription(ctx, local.MundipaggID)
	if err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, ErrSubscriptionNotFound
	}

	if remote.Status != local.Status {
		d.logger.Info("Subscription status changed",
			zap.String("code", code),
			zap.String("from", string(local.Status)),
			zap.String("to", string(remote.Status)),
			zap.Bool("disabled", remote.Status.IsDisabled()),
		)
	}
	local.Status = remote.Status
	if remote.CurrentCycle != nil {
		local.CurrentCycle = remote.CurrentCycle
	}

	if err := d.subscriptionDB.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}
	return local, nil
}
