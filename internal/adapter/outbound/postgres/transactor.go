package postgres

import (
	"context"

	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"gorm.io/gorm"
)

type txKey struct{}

// transactor implements outbound.TransactorPort.
type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor over db.
func NewTransactor(db *gorm.DB) outbound.TransactorPort {
	return &transactor{db: db}
}

// WithinTransaction joins the transaction already bound to ctx, if any.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

// Compile-time check
var _ outbound.TransactorPort = (*transactor)(nil)
