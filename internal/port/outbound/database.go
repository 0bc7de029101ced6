package outbound

import (
	"context"

	"github.com/mundipagg/gateway-core/internal/model"
)

// TransactorPort runs a unit of work in one database transaction.
type TransactorPort interface {
	// WithinTransaction executes fn with a context bound to a transaction.
	// Repositories called with that context join it.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChargeDatabasePort defines charge persistence operations.
type ChargeDatabasePort interface {
	// FindByMundipaggID finds a charge with its transactions. Inside a
	// transaction the row is locked until commit.
	FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Charge, error)

	// FindByOrderID finds the charges of a gateway order.
	FindByOrderID(ctx context.Context, orderMundipaggID string) ([]*model.Charge, error)

	// Save creates or updates a charge and its new transactions.
	Save(ctx context.Context, charge *model.Charge) error
}

// OrderDatabasePort defines gateway order persistence operations.
type OrderDatabasePort interface {
	FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Order, error)
	FindByCode(ctx context.Context, code string) (*model.Order, error)
	Save(ctx context.Context, order *model.Order) error
}

// PlatformOrderDatabasePort defines platform order persistence operations.
type PlatformOrderDatabasePort interface {
	// FindByCode finds a platform order with its history.
	FindByCode(ctx context.Context, code string) (*model.PlatformOrder, error)

	// Save creates or updates a platform order and stores new history comments.
	Save(ctx context.Context, order *model.PlatformOrder) error
}

// SubscriptionDatabasePort defines subscription persistence operations.
type SubscriptionDatabasePort interface {
	FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Subscription, error)
	FindByCode(ctx context.Context, code string) (*model.Subscription, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*model.Subscription, error)

	// List returns up to limit subscriptions (0 means no limit).
	List(ctx context.Context, limit int, listDisabled bool) ([]*model.Subscription, error)

	Save(ctx context.Context, subscription *model.Subscription) error
}

// WebhookEventDatabasePort defines webhook event persistence operations.
type WebhookEventDatabasePort interface {
	// Create creates a new webhook event record.
	Create(ctx context.Context, event *model.WebhookEvent) error

	// FindByHookID finds a webhook event by gateway hook ID.
	FindByHookID(ctx context.Context, hookID string) (*model.WebhookEvent, error)

	// MarkProcessed marks a webhook event as processed.
	MarkProcessed(ctx context.Context, event *model.WebhookEvent, result string, processErr error) error
}
