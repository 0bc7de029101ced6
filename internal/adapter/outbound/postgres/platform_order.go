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

// platformOrderAdapter implements outbound.PlatformOrderDatabasePort.
type platformOrderAdapter struct {
	db *gorm.DB
}

// NewPlatformOrderAdapter creates a new platform order database adapter.
func NewPlatformOrderAdapter(db *gorm.DB) outbound.PlatformOrderDatabasePort {
	return &platformOrderAdapter{db: db}
}

func (a *platformOrderAdapter) FindByCode(ctx context.Context, code string) (*model.PlatformOrder, error) {
	var order model.PlatformOrder
	err := conn(ctx, a.db).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("code = ?", code).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find platform order: %w", err)
	}
	return &order, nil
}

// Save upserts the order by code and appends its unsaved history comments.
func (a *platformOrderAdapter) Save(ctx context.Context, order *model.PlatformOrder) error {
	return conn(ctx, a.db).Transaction(func(tx *gorm.DB) error {
		if order.ID == uuid.Nil {
			var row struct{ ID uuid.UUID }
			err := tx.Model(&model.PlatformOrder{}).Select("id").Where("code = ?", order.Code).Take(&row).Error
			switch {
			case err == nil:
				order.ID = row.ID
			case errors.Is(err, gorm.ErrRecordNotFound):
				order.ID = uuid.New()
			default:
				return fmt.Errorf("find platform order: %w", err)
			}
		}

		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return fmt.Errorf("save platform order: %w", err)
		}

		if len(order.History) == 0 {
			return nil
		}
		for _, h := range order.History {
			h.PlatformOrderID = order.ID
		}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&order.History).Error
		if err != nil {
			return fmt.Errorf("save platform order history: %w", err)
		}
		return nil
	})
}

// Compile-time check
var _ outbound.PlatformOrderDatabasePort = (*platformOrderAdapter)(nil)
