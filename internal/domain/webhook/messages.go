package webhook

import (
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	"github.com/mundipagg/gateway-core/internal/shared/money"
)

// PrepareHistoryComment renders the platform order history line describing
// the financial state of charge.
func PrepareHistoryComment(loc *i18n.Localizer, charge *model.Charge) string {
	if !charge.Status.IsPaymentStatus() {
		return loc.Dashboard(i18n.ChargeCanceled) + " " +
			loc.Dashboard(i18n.RefundedAmount, currency(charge.RefundedAmount)) +
			" (" + loc.Dashboard(i18n.UntilNow) + ")"
	}

	history := loc.Dashboard(i18n.PaymentReceived, currency(charge.PaidAmount))

	extra := charge.ExtraAmount()
	if extra > 0 {
		history += ". " + loc.Dashboard(i18n.ExtraAmountPaid, currency(extra))
	}
	if extra < 0 {
		history += ". " + loc.Dashboard(i18n.RemainingAmount, currency(-extra))
	}

	if charge.RefundedAmount > 0 {
		history = loc.Dashboard(i18n.RefundedAmount, currency(charge.RefundedAmount)) +
			" (" + loc.Dashboard(i18n.UntilNow) + ")"
	}

	if charge.CanceledAmount > 0 {
		history += " (" + loc.Dashboard(i18n.PartialPayment) + ". " +
			loc.Dashboard(i18n.CanceledAmount, currency(charge.CanceledAmount)) + ")"
	}

	return history
}

// PrepareReturnMessage renders the answer sent back to the gateway.
func PrepareReturnMessage(charge *model.Charge) string {
	if !charge.Status.IsPaymentStatus() {
		return "Charge canceled. Refunded amount: " + money.Plain(charge.RefundedAmount)
	}

	msg := "Amount Paid: " + money.Plain(charge.PaidAmount)

	extra := charge.ExtraAmount()
	if extra > 0 {
		msg += ". Extra value paid: " + money.Plain(extra)
	}
	if extra < 0 {
		msg += ". Remaining Amount: " + money.Plain(-extra)
	}

	if charge.CanceledAmount > 0 {
		msg += ". Amount Canceled: " + money.Plain(charge.CanceledAmount)
	}

	// "unil" is part of the response text stores already match on.
	if charge.RefundedAmount > 0 {
		msg = "Refunded amount unil now: " + money.Plain(charge.RefundedAmount)
	}

	return msg
}

func currency(cents int64) float64 {
	return money.CentsToFloat(cents).InexactFloat64()
}
