package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_SetNumberRemovesCommas(t *testing.T) {
	a := &Address{}
	a.SetNumber("12,3,4,5,6")
	assert.Equal(t, "123456", a.Number)

	a.SetNumber(" 297 ")
	assert.Equal(t, "297", a.Number)
}

func TestAddress_Line1(t *testing.T) {
	a := &Address{Street: "Rua São João", Number: "297", Neighborhood: "Itoupava Norte"}
	assert.Equal(t, "297,Rua São João,Itoupava Norte", a.Line1())
}

func TestPlatformOrder_History(t *testing.T) {
	po := &PlatformOrder{}
	assert.Nil(t, po.LastHistoryComment())

	po.AddHistoryComment("Payment received: 10.00", false)
	po.AddHistoryComment("New order status: Canceled", true)

	require.Len(t, po.History, 2)
	last := po.LastHistoryComment()
	assert.Equal(t, "New order status: Canceled", last.Message)
	assert.True(t, last.CustomerNotified)
}

func TestPlatformOrder_SetAcquirerInfo(t *testing.T) {
	po := &PlatformOrder{}
	po.SetAcquirerInfo(&AcquirerInfo{ChargeID: "ch_1", TID: "1"})
	po.SetAcquirerInfo(&AcquirerInfo{ChargeID: "ch_2", TID: "2"})
	po.SetAcquirerInfo(&AcquirerInfo{ChargeID: "ch_1", TID: "3"})

	require.Len(t, po.AcquirerData, 2)
	assert.Equal(t, "3", po.AcquirerData[0].TID)
}

func TestCreateOrderRequest_ToPlatformOrder(t *testing.T) {
	req := &CreateOrderRequest{
		Code:       "100000001",
		GrandTotal: decimal.RequireFromString("115.30"),
		Customer:   &Customer{Name: "Ana", Address: &Address{Number: "1,2"}},
		Items:      []*Item{{Code: "sku", Amount: 11530, Quantity: 1, Recurrent: true}},
		Payments: []*Payment{
			{Method: PaymentMethodCreditCard, Amount: 10000},
			{Method: PaymentMethodBoleto, Amount: 1530},
		},
	}

	po := req.ToPlatformOrder()
	assert.Equal(t, OrderStateNew, po.State)
	assert.Equal(t, OrderStatusPending, po.Status)
	assert.Equal(t, "12", po.Customer.Address.Number)
	assert.Equal(t, []string{"credit_card", "boleto"}, []string(po.PaymentMethods))
	assert.True(t, po.HasRecurrentItem())
}
