package model

import "github.com/samber/lo"

// PaymentOrder is the order payload submitted to the gateway. Amounts are in cents.
type PaymentOrder struct {
	Code             string
	Amount           int64
	Customer         *Customer
	Items            []*Item
	Payments         []*Payment
	Shipping         *Shipping
	AntifraudEnabled bool
	Metadata         map[string]string
}

// PaymentsTotal returns the sum of all payment amounts.
func (o *PaymentOrder) PaymentsTotal() int64 {
	return lo.SumBy(o.Payments, func(p *Payment) int64 { return p.Amount })
}

// IsPaymentSumCorrect reports whether the payments cover exactly the order amount.
func (o *PaymentOrder) IsPaymentSumCorrect() bool {
	return o.PaymentsTotal() == o.Amount
}

// HasFailed reports whether a gateway order response must be treated as a
// failed creation: missing status or charges, or any failed status.
func (o *Order) HasFailed() bool {
	if o.Status == "" || len(o.Charges) == 0 || o.Status == OrderStatusFailed {
		return true
	}
	return lo.ContainsBy(o.Charges, func(c *Charge) bool {
		return c.Status == ChargeStatusFailed
	})
}
