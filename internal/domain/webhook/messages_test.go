package webhook

import (
	"testing"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	"github.com/stretchr/testify/assert"
)

func TestChargeMessages(t *testing.T) {
	tests := []struct {
		name    string
		charge  *model.Charge
		history string
		reply   string
	}{
		{
			name:    "paid",
			charge:  &model.Charge{Status: model.ChargeStatusPaid, Amount: 10000, PaidAmount: 10000},
			history: "Payment received: 100.00",
			reply:   "Amount Paid: 100",
		},
		{
			name:    "overpaid",
			charge:  &model.Charge{Status: model.ChargeStatusOverpaid, Amount: 10000, PaidAmount: 10550},
			history: "Payment received: 105.50. Extra amount paid: 5.50",
			reply:   "Amount Paid: 105.5. Extra value paid: 5.5",
		},
		{
			name:    "underpaid",
			charge:  &model.Charge{Status: model.ChargeStatusUnderpaid, Amount: 10000, PaidAmount: 6000, CanceledAmount: 4000},
			history: "Payment received: 60.00. Remaining amount: 40.00 (Partial Payment. Canceled amount: 40.00)",
			reply:   "Amount Paid: 60. Remaining Amount: 40. Amount Canceled: 40",
		},
		{
			name:    "paid with refund",
			charge:  &model.Charge{Status: model.ChargeStatusPaid, Amount: 10000, PaidAmount: 10000, RefundedAmount: 2500},
			history: "Refunded amount: 25.00 (until now)",
			reply:   "Refunded amount unil now: 25",
		},
		{
			name:    "canceled",
			charge:  &model.Charge{Status: model.ChargeStatusCanceled, Amount: 10000, PaidAmount: 10000, RefundedAmount: 10000},
			history: "Charge canceled. Refunded amount: 100.00 (until now)",
			reply:   "Charge canceled. Refunded amount: 100",
		},
		{
			name:    "partially canceled before payment",
			charge:  &model.Charge{Status: model.ChargeStatusPartialCanceled, Amount: 10000, CanceledAmount: 3000},
			history: "Charge canceled. Refunded amount: 0.00 (until now)",
			reply:   "Charge canceled. Refunded amount: 0",
		},
	}

	loc := i18n.New("en")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.history, PrepareHistoryComment(loc, tt.charge))
			assert.Equal(t, tt.reply, PrepareReturnMessage(tt.charge))
		})
	}
}

func TestPrepareHistoryComment_Localized(t *testing.T) {
	charge := &model.Charge{Status: model.ChargeStatusCanceled, RefundedAmount: 500}

	history := PrepareHistoryComment(i18n.New("pt-BR"), charge)

	assert.Contains(t, history, "Cobrança cancelada. Valor estornado: ")
	assert.Contains(t, history, "(até agora)")
}
