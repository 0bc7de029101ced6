package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Charge errors.
var (
	ErrChargeAlreadyPaid = errors.New("charge is already paid")
	ErrChargeCanceled    = errors.New("charge is canceled")
)

// ChargeStatus represents the gateway status of a charge.
type ChargeStatus string

const (
	ChargeStatusPending         ChargeStatus = "pending"
	ChargeStatusProcessing      ChargeStatus = "processing"
	ChargeStatusPaid            ChargeStatus = "paid"
	ChargeStatusOverpaid        ChargeStatus = "overpaid"
	ChargeStatusUnderpaid       ChargeStatus = "underpaid"
	ChargeStatusPartialCanceled ChargeStatus = "partial_canceled"
	ChargeStatusCanceled        ChargeStatus = "canceled"
	ChargeStatusFailed          ChargeStatus = "failed"
	ChargeStatusChargedback     ChargeStatus = "chargedback"
	ChargeStatusWithError       ChargeStatus = "with_error"
)

// String returns the string representation of the status.
func (s ChargeStatus) String() string {
	return string(s)
}

// IsPaymentStatus returns true when money was received for the charge.
func (s ChargeStatus) IsPaymentStatus() bool {
	return s == ChargeStatusPaid || s == ChargeStatusOverpaid || s == ChargeStatusUnderpaid
}

// TransactionStatus represents the gateway status of a charge transaction.
type TransactionStatus string

const (
	TransactionStatusCaptured                 TransactionStatus = "captured"
	TransactionStatusPartialCapture           TransactionStatus = "partial_capture"
	TransactionStatusAuthorizedPendingCapture TransactionStatus = "authorized_pending_capture"
	TransactionStatusVoided                   TransactionStatus = "voided"
	TransactionStatusPartialVoid              TransactionStatus = "partial_void"
	TransactionStatusGenerated                TransactionStatus = "generated"
	TransactionStatusUnderpaid                TransactionStatus = "underpaid"
	TransactionStatusPaid                     TransactionStatus = "paid"
	TransactionStatusOverpaid                 TransactionStatus = "overpaid"
	TransactionStatusWithError                TransactionStatus = "with_error"
	TransactionStatusNotAuthorized            TransactionStatus = "not_authorized"
	TransactionStatusRefunded                 TransactionStatus = "refunded"
	TransactionStatusPartialRefunded          TransactionStatus = "partial_refunded"
	TransactionStatusFailed                   TransactionStatus = "failed"
	TransactionStatusWaitingPayment           TransactionStatus = "waiting_payment"
	TransactionStatusPendingRefund            TransactionStatus = "pending_refund"
	TransactionStatusExpired                  TransactionStatus = "expired"
)

// String returns the string representation of the status.
func (s TransactionStatus) String() string {
	return string(s)
}

var transactionStatusErrors = map[TransactionStatus]string{
	TransactionStatusPartialRefunded:          "Estornada parcialmente",
	TransactionStatusPartialCapture:           "Capturada parcialmente",
	TransactionStatusCaptured:                 "Capturada",
	TransactionStatusAuthorizedPendingCapture: "Autorizada pendente de captura",
	TransactionStatusVoided:                   "Cancelada",
	TransactionStatusPartialVoid:              "Estornada parcialmente",
	TransactionStatusGenerated:                "Gerada",
	TransactionStatusUnderpaid:                "Não pago",
	TransactionStatusPaid:                     "Pago",
	TransactionStatusOverpaid:                 "OverPaid",
	TransactionStatusWithError:                "Com erro",
	TransactionStatusNotAuthorized:            "Não autorizada",
	TransactionStatusRefunded:                 "Estornada",
	TransactionStatusFailed:                   "Falha",
	TransactionStatusWaitingPayment:           "Aguardando Pagamento",
	TransactionStatusPendingRefund:            "Aguardando Estorno",
	TransactionStatusExpired:                  "Expirada",
}

// TransactionStatusError returns the customer facing message for a
// transaction status. The second value is false for unmapped statuses.
func TransactionStatusError(status TransactionStatus) (string, bool) {
	msg, ok := transactionStatusErrors[status]
	return msg, ok
}

// Transaction is one gateway attempt (authorization, capture, refund...) on a charge.
type Transaction struct {
	ID                uuid.UUID         `json:"-" gorm:"type:uuid;primaryKey"`
	MundipaggID       string            `json:"id" gorm:"uniqueIndex;not null"`
	ChargeMundipaggID string            `json:"charge_id" gorm:"index;not null"`
	Type              string            `json:"transaction_type"`
	Amount            int64             `json:"amount"`
	PaidAmount        int64             `json:"paid_amount"`
	Status            TransactionStatus `json:"status"`
	AcquirerName      string            `json:"acquirer_name,omitempty"`
	AcquirerTID       string            `json:"acquirer_tid,omitempty"`
	AcquirerNSU       string            `json:"acquirer_nsu,omitempty"`
	AcquirerAuthCode  string            `json:"acquirer_auth_code,omitempty"`
	AcquirerMessage   string            `json:"acquirer_message,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

// TableName returns the table name for GORM.
func (Transaction) TableName() string {
	return "charge_transactions"
}

// Charge is a gateway charge with its accumulated financial state.
// All amounts are in cents.
type Charge struct {
	ID               uuid.UUID      `json:"-" gorm:"type:uuid;primaryKey"`
	MundipaggID      string         `json:"id" gorm:"uniqueIndex;not null"`
	Code             string         `json:"code" gorm:"index"`
	OrderMundipaggID string         `json:"order_id" gorm:"index"`
	Amount           int64          `json:"amount"`
	PaidAmount       int64          `json:"paid_amount"`
	CanceledAmount   int64          `json:"canceled_amount"`
	RefundedAmount   int64          `json:"refunded_amount"`
	Status           ChargeStatus   `json:"status" gorm:"not null;default:pending"`
	PaymentMethod    string         `json:"payment_method"`
	SubscriptionID   string         `json:"subscription_id,omitempty" gorm:"index"`
	CycleStart       *time.Time     `json:"cycle_start,omitempty"`
	CycleEnd         *time.Time     `json:"cycle_end,omitempty"`
	Transactions     []*Transaction `json:"transactions,omitempty" gorm:"foreignKey:ChargeMundipaggID;references:MundipaggID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Charge) TableName() string {
	return "charges"
}

// IsRecurrence returns true when the charge was billed by a subscription invoice.
func (c *Charge) IsRecurrence() bool {
	return c.SubscriptionID != ""
}

// AddTransaction appends tx unless a transaction with the same gateway id was
// already merged. It returns false for duplicates.
func (c *Charge) AddTransaction(tx *Transaction) bool {
	if tx == nil {
		return false
	}
	if tx.MundipaggID != "" && c.HasTransaction(tx.MundipaggID) {
		return false
	}
	tx.ChargeMundipaggID = c.MundipaggID
	c.Transactions = append(c.Transactions, tx)
	return true
}

// HasTransaction reports whether a transaction with the given gateway id is present.
func (c *Charge) HasTransaction(mundipaggID string) bool {
	return lo.ContainsBy(c.Transactions, func(t *Transaction) bool {
		return t.MundipaggID == mundipaggID
	})
}

// LastTransaction returns the most recently added transaction, or nil.
func (c *Charge) LastTransaction() *Transaction {
	if len(c.Transactions) == 0 {
		return nil
	}
	return c.Transactions[len(c.Transactions)-1]
}

// Pay records amount as the paid amount and derives the payment status.
// An underpayment turns the unpaid remainder into the canceled amount.
func (c *Charge) Pay(amount int64) error {
	switch c.Status {
	case ChargeStatusPaid:
		return ErrChargeAlreadyPaid
	case ChargeStatusCanceled:
		return ErrChargeCanceled
	}

	c.PaidAmount = amount
	switch {
	case amount < c.Amount:
		c.Status = ChargeStatusUnderpaid
		c.CanceledAmount = c.Amount - amount
	case amount > c.Amount:
		c.Status = ChargeStatusOverpaid
		c.CanceledAmount = 0
	default:
		c.Status = ChargeStatusPaid
		c.CanceledAmount = 0
	}
	return nil
}

// Cancel applies a cancellation of amount cents. Captured money is refunded,
// otherwise the pending amount is canceled. A non-positive amount cancels
// everything left.
func (c *Charge) Cancel(amount int64) {
	if c.Status.IsPaymentStatus() || c.PaidAmount > 0 {
		refundable := c.PaidAmount - c.RefundedAmount
		if amount <= 0 || amount > refundable {
			amount = refundable
		}
		c.RefundedAmount += max(amount, 0)
		if c.RefundedAmount >= c.PaidAmount {
			c.Status = ChargeStatusCanceled
		}
		return
	}

	cancelable := c.Amount - c.CanceledAmount
	if amount <= 0 || amount > cancelable {
		amount = cancelable
	}
	c.CanceledAmount += max(amount, 0)
	if c.CanceledAmount >= c.Amount {
		c.Status = ChargeStatusCanceled
		return
	}
	c.Status = ChargeStatusPartialCanceled
}

// ExtraAmount returns paid minus billed amount; negative when underpaid.
func (c *Charge) ExtraAmount() int64 {
	return c.PaidAmount - c.Amount
}
