package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"gorm.io/gorm"
)

// subscriptionAdapter implements outbound.SubscriptionDatabasePort.
type subscriptionAdapter struct {
	db *gorm.DB
}

// NewSubscriptionAdapter creates a new subscription database adapter.
func NewSubscriptionAdapter(db *gorm.DB) outbound.SubscriptionDatabasePort {
	return &subscriptionAdapter{db: db}
}

func (a *subscriptionAdapter) FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Subscription, error) {
	return a.first(ctx, "mundipagg_id = ?", mundipaggID)
}

func (a *subscriptionAdapter) FindByCode(ctx context.Context, code string) (*model.Subscription, error) {
	return a.first(ctx, "code = ?", code)
}

func (a *subscriptionAdapter) first(ctx context.Context, query string, arg string) (*model.Subscription, error) {
	var sub model.Subscription
	err := conn(ctx, a.db).Where(query, arg).Order("created_at DESC").First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &sub, nil
}

func (a *subscriptionAdapter) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := conn(ctx, a.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("find subscriptions by customer: %w", err)
	}
	return subs, nil
}

func (a *subscriptionAdapter) List(ctx context.Context, limit int, listDisabled bool) ([]*model.Subscription, error) {
	query := conn(ctx, a.db).Model(&model.Subscription{})
	if !listDisabled {
		query = query.Where("status NOT IN ?", model.DisabledSubscriptionStatuses)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var subs []*model.Subscription
	if err := query.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// Save upserts the subscription by gateway id.
func (a *subscriptionAdapter) Save(ctx context.Context, sub *model.Subscription) error {
	db := conn(ctx, a.db)
	if sub.ID == uuid.Nil {
		id, err := existingID(db, &model.Subscription{}, sub.MundipaggID)
		if err != nil {
			return fmt.Errorf("find subscription: %w", err)
		}
		sub.ID = id
	}
	if err := db.Save(sub).Error; err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

// Compile-time check
var _ outbound.SubscriptionDatabasePort = (*subscriptionAdapter)(nil)
