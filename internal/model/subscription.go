package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// SubscriptionStatus represents the gateway status of a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusFuture   SubscriptionStatus = "future"
	SubscriptionStatusFailed   SubscriptionStatus = "failed"
)

// DisabledSubscriptionStatuses are the statuses of subscriptions that no longer bill.
var DisabledSubscriptionStatuses = []SubscriptionStatus{SubscriptionStatusCanceled, SubscriptionStatusFailed}

// IsDisabled returns true for subscriptions that no longer bill.
func (s SubscriptionStatus) IsDisabled() bool {
	return lo.Contains(DisabledSubscriptionStatuses, s)
}

// IntervalType is the billing interval unit.
type IntervalType string

const (
	IntervalDay   IntervalType = "day"
	IntervalWeek  IntervalType = "week"
	IntervalMonth IntervalType = "month"
	IntervalYear  IntervalType = "year"
)

// Cycle is a subscription billing period.
type Cycle struct {
	ID         string    `json:"id"`
	CycleStart time.Time `json:"start_at"`
	CycleEnd   time.Time `json:"end_at"`
}

// Subscription is a recurrence created from a platform order.
type Subscription struct {
	ID                uuid.UUID          `json:"-" gorm:"type:uuid;primaryKey"`
	MundipaggID       string             `json:"id" gorm:"uniqueIndex;not null"`
	Code              string             `json:"code" gorm:"index;not null"`
	Status            SubscriptionStatus `json:"status" gorm:"not null"`
	Installments      int                `json:"installments"`
	PaymentMethod     PaymentMethod      `json:"payment_method"`
	RecurrenceType    string             `json:"recurrence_type"`
	IntervalType      IntervalType       `json:"interval_type"`
	IntervalCount     int                `json:"interval_count"`
	CustomerID        string             `json:"customer_id" gorm:"index"`
	PlatformOrderCode string             `json:"platform_order_code" gorm:"index"`
	CurrentCycle      *Cycle             `json:"current_cycle,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Subscription) TableName() string {
	return "recurrence_subscriptions"
}

// RecurrenceConfig holds the store rules for subscription products.
type RecurrenceConfig struct {
	Enabled                                               bool
	ShowRecurrenceCurrencyWidget                          bool
	PurchaseRecurrenceProductWithNormalProduct            bool
	ConflictMessageRecurrenceProductWithNormalProduct     string
	PurchaseRecurrenceProductWithRecurrenceProduct        bool
	ConflictMessageRecurrenceProductWithRecurrenceProduct string
}
