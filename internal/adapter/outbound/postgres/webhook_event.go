package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"gorm.io/gorm"
)

// webhookEventAdapter implements outbound.WebhookEventDatabasePort.
type webhookEventAdapter struct {
	db *gorm.DB
}

// NewWebhookEventAdapter creates a new webhook event database adapter.
func NewWebhookEventAdapter(db *gorm.DB) outbound.WebhookEventDatabasePort {
	return &webhookEventAdapter{db: db}
}

func (a *webhookEventAdapter) Create(ctx context.Context, event *model.WebhookEvent) error {
	if err := conn(ctx, a.db).Create(event).Error; err != nil {
		return fmt.Errorf("create webhook event: %w", err)
	}
	return nil
}

func (a *webhookEventAdapter) FindByHookID(ctx context.Context, hookID string) (*model.WebhookEvent, error) {
	var event model.WebhookEvent
	err := conn(ctx, a.db).Where("hook_id = ?", hookID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find webhook event: %w", err)
	}
	return &event, nil
}

// MarkProcessed records the outcome of a delivery. A failed delivery stays
// unprocessed so the gateway's retry is handled again.
func (a *webhookEventAdapter) MarkProcessed(ctx context.Context, event *model.WebhookEvent, result string, processErr error) error {
	updates := map[string]interface{}{
		"result":       result,
		"processed":    false,
		"processed_at": nil,
		"error":        nil,
	}
	if processErr != nil {
		errStr := processErr.Error()
		updates["error"] = errStr
		event.Error = &errStr
	} else {
		now := time.Now()
		updates["processed"] = true
		updates["processed_at"] = now
		event.Processed = true
		event.ProcessedAt = &now
		event.Error = nil
	}
	event.Result = result

	err := conn(ctx, a.db).
		Model(&model.WebhookEvent{}).
		Where("id = ?", event.ID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("mark webhook event processed: %w", err)
	}
	return nil
}

// Compile-time check
var _ outbound.WebhookEventDatabasePort = (*webhookEventAdapter)(nil)
