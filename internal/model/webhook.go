package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WebhookEntity is the kind of gateway object a webhook is about.
type WebhookEntity string

const (
	WebhookEntityCharge       WebhookEntity = "charge"
	WebhookEntityOrder        WebhookEntity = "order"
	WebhookEntitySubscription WebhookEntity = "subscription"
	WebhookEntityInvoice      WebhookEntity = "invoice"
)

// Webhook is a decoded gateway notification.
type Webhook struct {
	HookID      string
	Type        string // e.g. "charge.paid"
	Entity      WebhookEntity
	Action      string // e.g. "paid"
	Payload     []byte
	Charge      *Charge
	Transaction *Transaction
}

// ParseWebhookType splits "charge.partial_canceled" into entity and action.
func ParseWebhookType(t string) (WebhookEntity, string) {
	entity, action, _ := strings.Cut(strings.ToLower(strings.TrimSpace(t)), ".")
	return WebhookEntity(entity), action
}

// WebhookResult is the answer returned to the gateway.
type WebhookResult struct {
	Message string `json:"message"`
	Code    int    `json:"-"`
}

// WebhookEvent is a stored webhook delivery, used for idempotency.
type WebhookEvent struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	HookID      string     `json:"hook_id" gorm:"uniqueIndex;not null"`
	Type        string     `json:"type" gorm:"not null"`
	EntityID    string     `json:"entity_id" gorm:"index"`
	Data        string     `json:"data" gorm:"type:jsonb"`
	Processed   bool       `json:"processed" gorm:"default:false"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Result      string     `json:"result,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName returns the table name for GORM.
func (WebhookEvent) TableName() string {
	return "mundipagg_webhook_events"
}
