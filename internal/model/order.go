package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// OrderStatus represents the status of an order, shared by the gateway order
// and the platform order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusFailed     OrderStatus = "failed"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusPaid, OrderStatusCanceled, OrderStatusFailed:
		return true
	}
	return false
}

// Label returns the capitalized status shown to store customers.
func (s OrderStatus) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseOrderStatus converts a gateway or platform status string, in any case,
// into an OrderStatus. Unknown values map to pending.
func ParseOrderStatus(s string) OrderStatus {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return OrderStatusPending
	}
	return status
}

// OrderState represents the workflow state of the platform order.
type OrderState string

const (
	OrderStateNew            OrderState = "new"
	OrderStatePendingPayment OrderState = "pending_payment"
	OrderStateProcessing     OrderState = "processing"
	OrderStateComplete       OrderState = "complete"
	OrderStateClosed         OrderState = "closed"
	OrderStateCanceled       OrderState = "canceled"
	OrderStateHolded         OrderState = "holded"
)

// String returns the string representation of the state.
func (s OrderState) String() string {
	return string(s)
}

// Order is the gateway order and the platform order it was created from.
type Order struct {
	ID            uuid.UUID      `json:"-" gorm:"type:uuid;primaryKey"`
	MundipaggID   string         `json:"id" gorm:"uniqueIndex;not null"`
	Code          string         `json:"code" gorm:"index;not null"`
	Status        OrderStatus    `json:"status" gorm:"not null;default:pending"`
	Charges       []*Charge      `json:"charges" gorm:"foreignKey:OrderMundipaggID;references:MundipaggID"`
	PlatformOrder *PlatformOrder `json:"-" gorm:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Order) TableName() string {
	return "gateway_orders"
}

// AddCharge replaces the charge with the same gateway id, or appends it.
func (o *Order) AddCharge(charge *Charge) {
	if charge == nil {
		return
	}
	_, idx, found := lo.FindIndexOf(o.Charges, func(c *Charge) bool {
		return c.MundipaggID == charge.MundipaggID
	})
	if found {
		o.Charges[idx] = charge
		return
	}
	o.Charges = append(o.Charges, charge)
}

// UpdateCharge stores the current state of charge on the order.
func (o *Order) UpdateCharge(charge *Charge) {
	o.AddCharge(charge)
}

// FindCharge returns the charge with the given gateway id, or nil.
func (o *Order) FindCharge(mundipaggID string) *Charge {
	charge, _ := lo.Find(o.Charges, func(c *Charge) bool {
		return c.MundipaggID == mundipaggID
	})
	return charge
}

// Totals returns the paid, canceled and refunded cents over all charges.
func (o *Order) Totals() (paid, canceled, refunded int64) {
	paid = lo.SumBy(o.Charges, func(c *Charge) int64 { return c.PaidAmount })
	canceled = lo.SumBy(o.Charges, func(c *Charge) int64 { return c.CanceledAmount })
	refunded = lo.SumBy(o.Charges, func(c *Charge) int64 { return c.RefundedAmount })
	return paid, canceled, refunded
}

// ApplyStatusFromCharges derives the order status from its charges: canceled
// when every charge is canceled, paid when every charge is settled and at
// least one received money. Otherwise the status is kept.
func (o *Order) ApplyStatusFromCharges() {
	if len(o.Charges) == 0 {
		return
	}
	if lo.EveryBy(o.Charges, func(c *Charge) bool { return c.Status == ChargeStatusCanceled }) {
		o.Status = OrderStatusCanceled
		return
	}
	settled := lo.EveryBy(o.Charges, func(c *Charge) bool {
		return c.Status.IsPaymentStatus() || c.Status == ChargeStatusCanceled
	})
	if settled && lo.SomeBy(o.Charges, func(c *Charge) bool { return c.Status.IsPaymentStatus() }) {
		o.Status = OrderStatusPaid
	}
}
