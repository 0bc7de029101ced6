package mundipagg

import (
	"time"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/samber/lo"
)

// ===== Requests =====

type orderRequest struct {
	Code             string            `json:"code"`
	Customer         *customerRequest  `json:"customer,omitempty"`
	Items            []itemRequest     `json:"items"`
	Payments         []paymentRequest  `json:"payments"`
	Shipping         *shippingRequest  `json:"shipping,omitempty"`
	AntifraudEnabled bool              `json:"antifraud_enabled"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

type addressRequest struct {
	Line1   string `json:"line_1"`
	Line2   string `json:"line_2,omitempty"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type phoneRequest struct {
	CountryCode string `json:"country_code"`
	AreaCode    string `json:"area_code"`
	Number      string `json:"number"`
}

type phonesRequest struct {
	HomePhone   *phoneRequest `json:"home_phone,omitempty"`
	MobilePhone *phoneRequest `json:"mobile_phone,omitempty"`
}

type customerRequest struct {
	Code     string          `json:"code,omitempty"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Document string          `json:"document"`
	Type     string          `json:"type"`
	Address  *addressRequest `json:"address,omitempty"`
	Phones   *phonesRequest  `json:"phones,omitempty"`
}

type itemRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Quantity    int    `json:"quantity"`
}

type cardRequest struct {
	Installments int    `json:"installments,omitempty"`
	CardToken    string `json:"card_token,omitempty"`
	CardID       string `json:"card_id,omitempty"`
	Capture      bool   `json:"capture"`
}

type emptyRequest struct{}

type paymentRequest struct {
	PaymentMethod string        `json:"payment_method"`
	Amount        int64         `json:"amount"`
	CreditCard    *cardRequest  `json:"credit_card,omitempty"`
	DebitCard     *cardRequest  `json:"debit_card,omitempty"`
	Boleto        *emptyRequest `json:"boleto,omitempty"`
	Voucher       *cardRequest  `json:"voucher,omitempty"`
	Pix           *emptyRequest `json:"pix,omitempty"`
}

type shippingRequest struct {
	Amount         int64           `json:"amount"`
	Description    string          `json:"description"`
	RecipientName  string          `json:"recipient_name"`
	RecipientPhone string          `json:"recipient_phone,omitempty"`
	Address        *addressRequest `json:"address,omitempty"`
}

type cancelChargeRequest struct {
	Amount int64 `json:"amount,omitempty"`
}

func newOrderRequest(o *model.PaymentOrder) *orderRequest {
	return &orderRequest{
		Code:     o.Code,
		Customer: newCustomerRequest(o.Customer),
		Items: lo.Map(o.Items, func(i *model.Item, _ int) itemRequest {
			return itemRequest{Code: i.Code, Description: i.Description, Amount: i.Amount, Quantity: i.Quantity}
		}),
		Payments: lo.Map(o.Payments, func(p *model.Payment, _ int) paymentRequest {
			return newPaymentRequest(p)
		}),
		Shipping:         newShippingRequest(o.Shipping),
		AntifraudEnabled: o.AntifraudEnabled,
		Metadata:         o.Metadata,
	}
}

func newAddressRequest(a *model.Address) *addressRequest {
	if a == nil {
		return nil
	}
	return &addressRequest{
		Line1:   a.Line1(),
		Line2:   a.Complement,
		ZipCode: a.ZipCode,
		City:    a.City,
		State:   a.State,
		Country: a.Country,
	}
}

func newPhoneRequest(p *model.Phone) *phoneRequest {
	if p == nil {
		return nil
	}
	return &phoneRequest{CountryCode: p.CountryCode, AreaCode: p.AreaCode, Number: p.Number}
}

func newCustomerRequest(c *model.Customer) *customerRequest {
	if c == nil {
		return nil
	}
	req := &customerRequest{
		Code:     c.Code,
		Name:     c.Name,
		Email:    c.Email,
		Document: c.Document,
		Type:     string(c.Type),
		Address:  newAddressRequest(c.Address),
	}
	if c.HomePhone != nil || c.MobilePhone != nil {
		req.Phones = &phonesRequest{
			HomePhone:   newPhoneRequest(c.HomePhone),
			MobilePhone: newPhoneRequest(c.MobilePhone),
		}
	}
	return req
}

func newPaymentRequest(p *model.Payment) paymentRequest {
	req := paymentRequest{PaymentMethod: string(p.Method), Amount: p.Amount}
	card := &cardRequest{
		Installments: p.Installments,
		CardToken:    p.CardToken,
		CardID:       p.CardID,
		Capture:      p.Capture,
	}
	switch p.Method {
	case model.PaymentMethodCreditCard:
		req.CreditCard = card
	case model.PaymentMethodDebitCard:
		req.DebitCard = card
	case model.PaymentMethodVoucher:
		req.Voucher = card
	case model.PaymentMethodBoleto:
		req.Boleto = &emptyRequest{}
	case model.PaymentMethodPix:
		req.Pix = &emptyRequest{}
	}
	return req
}

func newShippingRequest(s *model.Shipping) *shippingRequest {
	if s == nil {
		return nil
	}
	return &shippingRequest{
		Amount:         s.Amount,
		Description:    s.Description,
		RecipientName:  s.RecipientName,
		RecipientPhone: s.Phone,
		Address:        newAddressRequest(s.Address),
	}
}

// ===== Responses =====

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type transactionResponse struct {
	ID               string    `json:"id"`
	TransactionType  string    `json:"transaction_type"`
	Amount           int64     `json:"amount"`
	PaidAmount       int64     `json:"paid_amount"`
	Status           string    `json:"status"`
	AcquirerName     string    `json:"acquirer_name"`
	AcquirerTID      string    `json:"acquirer_tid"`
	AcquirerNSU      string    `json:"acquirer_nsu"`
	AcquirerAuthCode string    `json:"acquirer_auth_code"`
	AcquirerMessage  string    `json:"acquirer_message"`
	CreatedAt        time.Time `json:"created_at"`
}

type chargeResponse struct {
	ID              string               `json:"id"`
	Code            string               `json:"code"`
	Amount          int64                `json:"amount"`
	PaidAmount      int64                `json:"paid_amount"`
	CanceledAmount  int64                `json:"canceled_amount"`
	RefundedAmount  int64                `json:"refunded_amount"`
	Status          string               `json:"status"`
	PaymentMethod   string               `json:"payment_method"`
	LastTransaction *transactionResponse `json:"last_transaction"`
	Invoice         *invoiceResponse     `json:"invoice"`
	Order           *struct {
		ID string `json:"id"`
	} `json:"order"`
}

// invoiceResponse carries the subscription id under both spellings the
// gateway has used for it.
type invoiceResponse struct {
	ID                  string `json:"id"`
	SubscriptionID      string `json:"subscriptionId"`
	SubscriptionIDSnake string `json:"subscription_id"`
}

func (i *invoiceResponse) subscriptionID() string {
	if i.SubscriptionID != "" {
		return i.SubscriptionID
	}
	return i.SubscriptionIDSnake
}

type orderResponse struct {
	ID      string           `json:"id"`
	Code    string           `json:"code"`
	Status  string           `json:"status"`
	Charges []chargeResponse `json:"charges"`
}

type cycleResponse struct {
	ID      string    `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type subscriptionResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Status        string `json:"status"`
	Installments  int    `json:"installments"`
	PaymentMethod string `json:"payment_method"`
	BillingType   string `json:"billing_type"`
	Interval      string `json:"interval"`
	IntervalCount int    `json:"interval_count"`
	Customer      *struct {
		ID string `json:"id"`
	} `json:"customer"`
	CurrentCycle *cycleResponse `json:"current_cycle"`
}

func (t *transactionResponse) toModel(chargeID string) *model.Transaction {
	if t == nil {
		return nil
	}
	return &model.Transaction{
		MundipaggID:       t.ID,
		ChargeMundipaggID: chargeID,
		Type:              t.TransactionType,
		Amount:            t.Amount,
		PaidAmount:        t.PaidAmount,
		Status:            model.TransactionStatus(t.Status),
		AcquirerName:      t.AcquirerName,
		AcquirerTID:       t.AcquirerTID,
		AcquirerNSU:       t.AcquirerNSU,
		AcquirerAuthCode:  t.AcquirerAuthCode,
		AcquirerMessage:   t.AcquirerMessage,
		CreatedAt:         t.CreatedAt,
	}
}

// toModel hydrates the charge without its transactions.
func (c *chargeResponse) toModel() *model.Charge {
	charge := &model.Charge{
		MundipaggID:    c.ID,
		Code:           c.Code,
		Amount:         c.Amount,
		PaidAmount:     c.PaidAmount,
		CanceledAmount: c.CanceledAmount,
		RefundedAmount: c.RefundedAmount,
		Status:         model.ChargeStatus(c.Status),
		PaymentMethod:  c.PaymentMethod,
	}
	if c.Order != nil {
		charge.OrderMundipaggID = c.Order.ID
	}
	if c.Invoice != nil {
		charge.SubscriptionID = c.Invoice.subscriptionID()
	}
	return charge
}

func (o *orderResponse) toModel() *model.Order {
	order := &model.Order{
		MundipaggID: o.ID,
		Code:        o.Code,
		Status:      model.OrderStatus(o.Status),
	}
	for i := range o.Charges {
		charge := o.Charges[i].toModel()
		if charge.OrderMundipaggID == "" {
			charge.OrderMundipaggID = o.ID
		}
		charge.AddTransaction(o.Charges[i].LastTransaction.toModel(charge.MundipaggID))
		order.AddCharge(charge)
	}
	return order
}

func (s *subscriptionResponse) toModel() *model.Subscription {
	sub := &model.Subscription{
		MundipaggID:       s.ID,
		Code:              s.Code,
		Status:            model.SubscriptionStatus(s.Status),
		Installments:      s.Installments,
		PaymentMethod:     model.PaymentMethod(s.PaymentMethod),
		RecurrenceType:    s.BillingType,
		IntervalType:      model.IntervalType(s.Interval),
		IntervalCount:     s.IntervalCount,
		PlatformOrderCode: s.Code,
	}
	if s.Customer != nil {
		sub.CustomerID = s.Customer.ID
	}
	if s.CurrentCycle != nil {
		sub.CurrentCycle = &model.Cycle{
			ID:         s.CurrentCycle.ID,
			CycleStart: s.CurrentCycle.StartAt,
			CycleEnd:   s.CurrentCycle.EndAt,
		}
	}
	return sub
}
