package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CustomerType is the gateway customer type.
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeCompany    CustomerType = "company"
)

// Address is a customer or shipping address.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	ZipCode      string `json:"zip_code"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

// SetNumber stores the street number without the commas some stores send.
func (a *Address) SetNumber(number string) {
	a.Number = strings.ReplaceAll(strings.TrimSpace(number), ",", "")
}

// Line1 returns the gateway formatted first address line.
func (a *Address) Line1() string {
	return strings.Join([]string{a.Number, a.Street, a.Neighborhood}, ",")
}

// Phone is a customer phone number.
type Phone struct {
	CountryCode string `json:"country_code"`
	AreaCode    string `json:"area_code"`
	Number      string `json:"number"`
}

// Customer is the buyer of a platform order.
type Customer struct {
	Code        string       `json:"code,omitempty"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Document    string       `json:"document"`
	Type        CustomerType `json:"type"`
	Address     *Address     `json:"address,omitempty"`
	HomePhone   *Phone       `json:"home_phone,omitempty"`
	MobilePhone *Phone       `json:"mobile_phone,omitempty"`
}

// Item is a platform order line item. Amount is the unit price in cents.
type Item struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Quantity    int    `json:"quantity"`
	Recurrent   bool   `json:"recurrent,omitempty"`
}

// PaymentMethod is a gateway payment method.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodBoleto     PaymentMethod = "boleto"
	PaymentMethodVoucher    PaymentMethod = "voucher"
	PaymentMethodPix        PaymentMethod = "pix"
)

// Payment is one payment of a platform order. Amount is in cents.
type Payment struct {
	Method       PaymentMethod `json:"payment_method"`
	Amount       int64         `json:"amount"`
	Installments int           `json:"installments,omitempty"`
	CardToken    string        `json:"card_token,omitempty"`
	CardID       string        `json:"card_id,omitempty"`
	Capture      bool          `json:"capture"`
}

// Shipping is the delivery of a platform order. Amount is in cents.
type Shipping struct {
	Amount        int64    `json:"amount"`
	Description   string   `json:"description"`
	RecipientName string   `json:"recipient_name"`
	Phone         string   `json:"recipient_phone,omitempty"`
	Address       *Address `json:"address,omitempty"`
}

// AcquirerInfo is the acquirer data of a charge's last transaction.
type AcquirerInfo struct {
	ChargeID  string `json:"charge_id"`
	Name      string `json:"acquirer_name,omitempty"`
	TID       string `json:"acquirer_tid,omitempty"`
	NSU       string `json:"acquirer_nsu,omitempty"`
	AuthCode  string `json:"acquirer_auth_code,omitempty"`
	Message   string `json:"acquirer_message,omitempty"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

// HistoryComment is one audit line written on a platform order.
type HistoryComment struct {
	ID               uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	PlatformOrderID  uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Message          string    `json:"message" gorm:"type:text;not null"`
	CustomerNotified bool      `json:"customer_notified"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (HistoryComment) TableName() string {
	return "platform_order_histories"
}

// PlatformOrder is the store's order record. Totals are currency values.
type PlatformOrder struct {
	ID                uuid.UUID         `json:"-" gorm:"type:uuid;primaryKey"`
	Code              string            `json:"code" gorm:"uniqueIndex;not null"`
	MundipaggID       string            `json:"mundipagg_id,omitempty" gorm:"index"`
	GrandTotal        decimal.Decimal   `json:"grand_total" gorm:"type:numeric(12,2);not null"`
	State             OrderState        `json:"state" gorm:"not null;default:new"`
	Status            OrderStatus       `json:"status" gorm:"not null;default:pending"`
	TotalPaid         decimal.Decimal   `json:"total_paid" gorm:"type:numeric(12,2);default:0"`
	BaseTotalPaid     decimal.Decimal   `json:"base_total_paid" gorm:"type:numeric(12,2);default:0"`
	TotalCanceled     decimal.Decimal   `json:"total_canceled" gorm:"type:numeric(12,2);default:0"`
	BaseTotalCanceled decimal.Decimal   `json:"base_total_canceled" gorm:"type:numeric(12,2);default:0"`
	TotalRefunded     decimal.Decimal   `json:"total_refunded" gorm:"type:numeric(12,2);default:0"`
	BaseTotalRefunded decimal.Decimal   `json:"base_total_refunded" gorm:"type:numeric(12,2);default:0"`
	PaymentMethods    pq.StringArray    `json:"payment_methods" gorm:"type:text[]"`
	Customer          *Customer         `json:"customer" gorm:"type:jsonb;serializer:json"`
	Items             []*Item           `json:"items" gorm:"type:jsonb;serializer:json"`
	Payments          []*Payment        `json:"payments" gorm:"type:jsonb;serializer:json"`
	Shipping          *Shipping         `json:"shipping,omitempty" gorm:"type:jsonb;serializer:json"`
	AcquirerData      []*AcquirerInfo   `json:"acquirer_data,omitempty" gorm:"type:jsonb;serializer:json"`
	History           []*HistoryComment `json:"history,omitempty" gorm:"foreignKey:PlatformOrderID"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (PlatformOrder) TableName() string {
	return "platform_orders"
}

// AddHistoryComment appends an audit line. Unsaved comments are persisted
// with the platform order.
func (p *PlatformOrder) AddHistoryComment(message string, customerNotified bool) {
	p.History = append(p.History, &HistoryComment{
		ID:               uuid.New(),
		PlatformOrderID:  p.ID,
		Message:          message,
		CustomerNotified: customerNotified,
		CreatedAt:        time.Now().UTC(),
	})
}

// LastHistoryComment returns the most recent audit line, or nil.
func (p *PlatformOrder) LastHistoryComment() *HistoryComment {
	if len(p.History) == 0 {
		return nil
	}
	return p.History[len(p.History)-1]
}

// HasRecurrentItem reports whether any item is a subscription product.
func (p *PlatformOrder) HasRecurrentItem() bool {
	for _, item := range p.Items {
		if item.Recurrent {
			return true
		}
	}
	return false
}

// SetAcquirerInfo stores info, replacing the entry of the same charge.
func (p *PlatformOrder) SetAcquirerInfo(info *AcquirerInfo) {
	for i, existing := range p.AcquirerData {
		if existing.ChargeID == info.ChargeID {
			p.AcquirerData[i] = info
			return
		}
	}
	p.AcquirerData = append(p.AcquirerData, info)
}
