package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"go.uber.org/zap"
)

// WebhookDomain defines the interface for gateway webhook handling.
type WebhookDomain interface {
	// Handle applies a gateway notification once per hook id and returns the
	// answer for the gateway.
	Handle(ctx context.Context, hook *model.Webhook) (*model.WebhookResult, error)
}

type handleFunc func(ctx context.Context, hook *model.Webhook, order *model.Order) (*model.WebhookResult, error)

// Actions the gateway sends that need no state change.
var acknowledgedActions = map[string]bool{
	"processing":     true,
	"payment_failed": true,
	"created":        true,
	"pending":        true,
}

// webhookDomain implements WebhookDomain.
type webhookDomain struct {
	eventDB    outbound.WebhookEventDatabasePort
	transactor outbound.TransactorPort
	recurrence ChargeService
	orders     ChargeService
	logger     *zap.Logger
}

// NewWebhookDomain creates a new webhook domain service.
func NewWebhookDomain(
	eventDB outbound.WebhookEventDatabasePort,
	transactor outbound.TransactorPort,
	recurrence ChargeService,
	orders ChargeService,
	logger *zap.Logger,
) WebhookDomain {
	return &webhookDomain{
		eventDB:    eventDB,
		transactor: transactor,
		recurrence: recurrence,
		orders:     orders,
		logger:     logger,
	}
}

func (d *webhookDomain) Handle(ctx context.Context, hook *model.Webhook) (*model.WebhookResult, error) {
	if hook == nil || hook.HookID == "" || hook.Type == "" {
		return nil, ErrInvalidWebhook
	}

	event, err := d.eventDB.FindByHookID(ctx, hook.HookID)
	if err != nil {
		return nil, fmt.Errorf("find webhook event: %w", err)
	}
	if event != nil && event.Processed {
		d.logger.Info("Webhook already handled, skipping",
			zap.String("hook_id", hook.HookID), zap.String("type", hook.Type))
		return ok(fmt.Sprintf("Webhook %s already handled.", hook.HookID)), nil
	}

	if event == nil {
		event = newWebhookEvent(hook)
		if err := d.eventDB.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("create webhook event: %w", err)
		}
	}

	result, processErr := d.process(ctx, hook)

	message := ""
	if result != nil {
		message = result.Message
	}
	if markErr := d.eventDB.MarkProcessed(ctx, event, message, processErr); markErr != nil {
		d.logger.Error("Failed to mark webhook event processed",
			zap.String("hook_id", hook.HookID), zap.Error(markErr))
	}

	if processErr != nil {
		d.logger.Error("Webhook processing failed",
			zap.String("hook_id", hook.HookID), zap.String("type", hook.Type), zap.Error(processErr))
		return nil, processErr
	}
	return result, nil
}

func (d *webhookDomain) process(ctx context.Context, hook *model.Webhook) (*model.WebhookResult, error) {
	if hook.Entity != model.WebhookEntityCharge {
		return d.notImplemented(hook), nil
	}
	if acknowledgedActions[hook.Action] {
		d.logger.Info("Webhook acknowledged", zap.String("hook_id", hook.HookID), zap.String("type", hook.Type))
		return ok(fmt.Sprintf("Webhook %s acknowledged.", hook.Type)), nil
	}
	if hook.Charge == nil {
		return nil, ErrMissingCharge
	}

	svc := d.orders
	if hook.Charge.IsRecurrence() {
		svc = d.recurrence
	}

	handle := actionHandler(svc, hook.Action)
	if handle == nil {
		return d.notImplemented(hook), nil
	}

	var result *model.WebhookResult
	err := d.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := svc.LoadOrder(ctx, hook)
		if err != nil {
			return err
		}
		result, err = handle(ctx, hook, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (d *webhookDomain) notImplemented(hook *model.Webhook) *model.WebhookResult {
	message := fmt.Sprintf("Webhook %s not implemented", hook.Type)
	d.logger.Info(message, zap.String("hook_id", hook.HookID))
	return ok(message)
}

func actionHandler(svc ChargeService, action string) handleFunc {
	switch action {
	case "paid", "overpaid", "underpaid":
		return svc.HandlePaid
	case "partial_canceled":
		return svc.HandlePartialCanceled
	case "refunded":
		return svc.HandleRefunded
	}
	return nil
}

func newWebhookEvent(hook *model.Webhook) *model.WebhookEvent {
	data := string(hook.Payload)
	if data == "" {
		data = "{}"
	}
	entityID := ""
	if hook.Charge != nil {
		entityID = hook.Charge.MundipaggID
	}
	return &model.WebhookEvent{
		ID:        uuid.New(),
		HookID:    hook.HookID,
		Type:      hook.Type,
		EntityID:  entityID,
		Data:      data,
		Processed: false,
		CreatedAt: time.Now(),
	}
}
