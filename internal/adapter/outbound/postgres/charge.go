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

// chargeAdapter implements outbound.ChargeDatabasePort.
type chargeAdapter struct {
	db *gorm.DB
}

// NewChargeAdapter creates a new charge database adapter.
func NewChargeAdapter(db *gorm.DB) outbound.ChargeDatabasePort {
	return &chargeAdapter{db: db}
}

func (a *chargeAdapter) FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Charge, error) {
	q := conn(ctx, a.db).Preload("Transactions", orderTransactions)
	if inTransaction(ctx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var charge model.Charge
	err := q.Where("mundipagg_id = ?", mundipaggID).First(&charge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find charge: %w", err)
	}
	return &charge, nil
}

func (a *chargeAdapter) FindByOrderID(ctx context.Context, orderMundipaggID string) ([]*model.Charge, error) {
	var charges []*model.Charge
	err := conn(ctx, a.db).
		Preload("Transactions", orderTransactions).
		Where("order_mundipagg_id = ?", orderMundipaggID).
		Order("created_at ASC").
		Find(&charges).Error
	if err != nil {
		return nil, fmt.Errorf("find charges by order: %w", err)
	}
	return charges, nil
}

// Save upserts the charge by gateway id. Transactions are append-only, so
// the ones already stored are skipped.
func (a *chargeAdapter) Save(ctx context.Context, charge *model.Charge) error {
	return conn(ctx, a.db).Transaction(func(tx *gorm.DB) error {
		return saveCharge(tx, charge)
	})
}

func saveCharge(tx *gorm.DB, charge *model.Charge) error {
	if charge.ID == uuid.Nil {
		id, err := existingID(tx, &model.Charge{}, charge.MundipaggID)
		if err != nil {
			return fmt.Errorf("find charge: %w", err)
		}
		charge.ID = id
	}

	if err := tx.Omit(clause.Associations).Save(charge).Error; err != nil {
		return fmt.Errorf("save charge: %w", err)
	}

	if len(charge.Transactions) == 0 {
		return nil
	}
	for _, t := range charge.Transactions {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.ChargeMundipaggID = charge.MundipaggID
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mundipagg_id"}},
		DoNothing: true,
	}).Create(&charge.Transactions).Error
	if err != nil {
		return fmt.Errorf("save charge transactions: %w", err)
	}
	return nil
}

// existingID returns the id of the row of m's table with the given gateway
// id, or a new id when there is none.
func existingID(tx *gorm.DB, m any, mundipaggID string) (uuid.UUID, error) {
	var row struct{ ID uuid.UUID }
	err := tx.Model(m).Select("id").Where("mundipagg_id = ?", mundipaggID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.New(), nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}

func orderTransactions(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// Compile-time check
var _ outbound.ChargeDatabasePort = (*chargeAdapter)(nil)
