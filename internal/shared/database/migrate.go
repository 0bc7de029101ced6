package database

import (
	"fmt"

	"github.com/mundipagg/gateway-core/internal/model"
	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&model.PlatformOrder{},
		&model.HistoryComment{},
		&model.Order{},
		&model.Charge{},
		&model.Transaction{},
		&model.Subscription{},
		&model.WebhookEvent{},
	}
}

// Migrate creates or updates the service tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
