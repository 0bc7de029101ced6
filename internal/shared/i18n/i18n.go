// Package i18n renders the dashboard strings written into platform order
// history comments.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Dashboard message keys.
const (
	PaymentReceived             = "Payment received: %.2f"
	ExtraAmountPaid             = "Extra amount paid: %.2f"
	RemainingAmount             = "Remaining amount: %.2f"
	RefundedAmount              = "Refunded amount: %.2f"
	UntilNow                    = "until now"
	PartialPayment              = "Partial Payment"
	CanceledAmount              = "Canceled amount: %.2f"
	ChargeCanceled              = "Charge canceled."
	WebhookReceived             = "Webhook received: %s %s"
	NewOrderStatus              = "New order status: %s"
	OrderCanceledAt             = "Order '%s' canceled at Mundipagg"
	ChargesNotCanceled          = "Some charges couldn't be canceled at Mundipagg. Reasons:"
	OrderCreatedAt              = "Order created at Mundipagg. Id: %s"
	CantCreateOrder             = "Can't create order."
	PaymentSumMismatch          = "The sum of payments is different than the order amount!"
	OrderCreationFailed         = "An error occurred when trying to create the order. Please try again. Error Reference: %s"
	OrderProcessingFailed       = "Failed to process your order"
	TransactionProcessingFailed = "Failed to process your transaction"
)

var ptBR = map[string]string{
	PaymentReceived:             "Pagamento recebido: %.2f",
	ExtraAmountPaid:             "Valor extra pago: %.2f",
	RemainingAmount:             "Valor restante: %.2f",
	RefundedAmount:              "Valor estornado: %.2f",
	UntilNow:                    "até agora",
	PartialPayment:              "Pagamento Parcial",
	CanceledAmount:              "Valor cancelado: %.2f",
	ChargeCanceled:              "Cobrança cancelada.",
	WebhookReceived:             "Webhook recebido: %s %s",
	NewOrderStatus:              "Novo status do pedido: %s",
	OrderCanceledAt:             "Pedido '%s' cancelado na Mundipagg",
	ChargesNotCanceled:          "Algumas cobranças não puderam ser canceladas na Mundipagg. Motivos:",
	OrderCreatedAt:              "Pedido criado na Mundipagg. Id: %s",
	CantCreateOrder:             "Não foi possível criar o pedido.",
	PaymentSumMismatch:          "A soma dos pagamentos é diferente do valor do pedido!",
	OrderCreationFailed:         "Ocorreu um erro ao tentar criar o pedido. Por favor, tente novamente. Referência do erro: %s",
	OrderProcessingFailed:       "Falha ao processar seu pedido",
	TransactionProcessingFailed: "Falha ao processar sua transação",
}

var supported = []language.Tag{language.English, language.BrazilianPortuguese}

// Localizer translates dashboard keys into the configured store locale.
type Localizer struct {
	printer *message.Printer
	tag     language.Tag
}

// New creates a Localizer for locale (BCP 47, e.g. "pt-BR"). Unknown locales
// fall back to English, which renders keys as they are.
func New(locale string) *Localizer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range ptBR {
		_ = b.SetString(language.BrazilianPortuguese, key, msg)
	}

	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		_, idx, confidence := language.NewMatcher(supported).Match(parsed)
		if confidence != language.No {
			tag = supported[idx]
		}
	}

	return &Localizer{
		printer: message.NewPrinter(tag, message.Catalog(b)),
		tag:     tag,
	}
}

// Dashboard formats a dashboard message in the localizer's language.
func (l *Localizer) Dashboard(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Language returns the resolved language tag.
func (l *Localizer) Language() language.Tag {
	return l.tag
}
