package model

import "github.com/shopspring/decimal"

// CreateOrderRequest is the platform order the store submits for payment.
type CreateOrderRequest struct {
	Code       string          `json:"code" binding:"required"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Customer   *Customer       `json:"customer" binding:"required"`
	Items      []*Item         `json:"items" binding:"required,min=1,dive"`
	Payments   []*Payment      `json:"payments" binding:"required,min=1,dive"`
	Shipping   *Shipping       `json:"shipping"`
}

// ToPlatformOrder builds the platform order record from the request.
func (r *CreateOrderRequest) ToPlatformOrder() *PlatformOrder {
	po := &PlatformOrder{
		Code:       r.Code,
		GrandTotal: r.GrandTotal,
		State:      OrderStateNew,
		Status:     OrderStatusPending,
		Customer:   r.Customer,
		Items:      r.Items,
		Payments:   r.Payments,
		Shipping:   r.Shipping,
	}
	for _, p := range r.Payments {
		po.PaymentMethods = append(po.PaymentMethods, string(p.Method))
	}
	if po.Customer != nil && po.Customer.Address != nil {
		po.Customer.Address.SetNumber(po.Customer.Address.Number)
	}
	if po.Shipping != nil && po.Shipping.Address != nil {
		po.Shipping.Address.SetNumber(po.Shipping.Address.Number)
	}
	return po
}

// SubscriptionListRequest defines subscription listing parameters.
type SubscriptionListRequest struct {
	Limit        int    `form:"limit"`
	CustomerID   string `form:"customer_id"`
	ListDisabled bool   `form:"list_disabled"`
}
