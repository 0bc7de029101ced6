package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderAdapter implements outbound.OrderDatabasePort.
type orderAdapter struct {
	db *gorm.DB
}

// NewOrderAdapter creates a new gateway order database adapter.
func NewOrderAdapter(db *gorm.DB) outbound.OrderDatabasePort {
	return &orderAdapter{db: db}
}

func (a *orderAdapter) FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Order, error) {
	return a.first(ctx, "mundipagg_id = ?", mundipaggID)
}

func (a *orderAdapter) FindByCode(ctx context.Context, code string) (*model.Order, error) {
	return a.first(ctx, "code = ?", code)
}

func (a *orderAdapter) first(ctx context.Context, query string, arg string) (*model.Order, error) {
	var order model.Order
	err := conn(ctx, a.db).
		Preload("Charges", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Charges.Transactions", orderTransactions).
		Where(query, arg).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// Save upserts the order row only. Charges are stored through the charge
// adapter, which owns their locking.
func (a *orderAdapter) Save(ctx context.Context, order *model.Order) error {
	db := conn(ctx, a.db)
	if order.ID == uuid.Nil {
		id, err := existingID(db, &model.Order{}, order.MundipaggID)
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}
		order.ID = id
	}
	if err := db.Omit(clause.Associations).Save(order).Error; err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// Compile-time check
var _ outbound.OrderDatabasePort = (*orderAdapter)(nil)
