package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListResponse wraps a list of items.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// NewListResponse creates a list response.
func NewListResponse[T any](data []T) *ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &ListResponse[T]{Data: data, Total: len(data)}
}

// ChargeResponse represents a charge in API responses.
type ChargeResponse struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	Status         ChargeStatus `json:"status"`
	PaymentMethod  string       `json:"payment_method"`
	Amount         int64        `json:"amount"`
	PaidAmount     int64        `json:"paid_amount"`
	CanceledAmount int64        `json:"canceled_amount"`
	RefundedAmount int64        `json:"refunded_amount"`
}

// OrderResponse represents a platform order and its gateway state in API responses.
type OrderResponse struct {
	Code          string            `json:"code"`
	MundipaggID   string            `json:"mundipagg_id,omitempty"`
	State         OrderState        `json:"state"`
	Status        OrderStatus       `json:"status"`
	GrandTotal    decimal.Decimal   `json:"grand_total"`
	TotalPaid     decimal.Decimal   `json:"total_paid"`
	TotalCanceled decimal.Decimal   `json:"total_canceled"`
	TotalRefunded decimal.Decimal   `json:"total_refunded"`
	Charges       []*ChargeResponse `json:"charges"`
	History       []*HistoryComment `json:"history"`
	CreatedAt     time.Time         `json:"created_at"`
}

// NewOrderResponse builds the API view of a platform order and its charges.
func NewOrderResponse(po *PlatformOrder, charges []*Charge) *OrderResponse {
	resp := &OrderResponse{
		Code:          po.Code,
		MundipaggID:   po.MundipaggID,
		State:         po.State,
		Status:        po.Status,
		GrandTotal:    po.GrandTotal,
		TotalPaid:     po.TotalPaid,
		TotalCanceled: po.TotalCanceled,
		TotalRefunded: po.TotalRefunded,
		Charges:       make([]*ChargeResponse, 0, len(charges)),
		History:       po.History,
		CreatedAt:     po.CreatedAt,
	}
	for _, c := range charges {
		resp.Charges = append(resp.Charges, &ChargeResponse{
			ID:             c.MundipaggID,
			Code:           c.Code,
			Status:         c.Status,
			PaymentMethod:  c.PaymentMethod,
			Amount:         c.Amount,
			PaidAmount:     c.PaidAmount,
			CanceledAmount: c.CanceledAmount,
			RefundedAmount: c.RefundedAmount,
		})
	}
	return resp
}

// ErrorResponse defines error response structure.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse carries a single message.
type MessageResponse struct {
	Message string `json:"message"`
}
