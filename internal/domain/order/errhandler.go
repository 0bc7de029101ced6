package order

import (
	"net/http"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
)

// Chain messages are dashboard keys, localized by the caller.
const (
	defaultErrorMessage     = i18n.OrderProcessingFailed
	transactionErrorMessage = i18n.TransactionProcessingFailed
)

// HandlerError is the customer facing outcome of a refused order creation.
type HandlerError struct {
	Message string
	Code    int
}

func (e *HandlerError) Error() string {
	return e.Message
}

// ResponseErrorHandler is one link of the chain that explains why the gateway
// refused an order.
type ResponseErrorHandler interface {
	// SetNext sets the handler consulted when this one has nothing to say.
	// It returns the receiver so chains can be built inline.
	SetNext(next ResponseErrorHandler) ResponseErrorHandler
	Handle(resp *model.Order) *HandlerError
}

// DefaultHandler answers with a generic order failure.
type DefaultHandler struct {
	next ResponseErrorHandler
}

// NewDefaultHandler creates the last link of the chain.
func NewDefaultHandler() *DefaultHandler {
	return &DefaultHandler{}
}

func (h *DefaultHandler) SetNext(next ResponseErrorHandler) ResponseErrorHandler {
	h.next = next
	return h
}

func (h *DefaultHandler) Handle(resp *model.Order) *HandlerError {
	if h.next != nil {
		return h.next.Handle(resp)
	}
	return &HandlerError{Message: defaultErrorMessage, Code: http.StatusBadRequest}
}

// TransactionHandler explains the failure with the status of the first
// charge's last transaction.
type TransactionHandler struct {
	next ResponseErrorHandler
}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

func (h *TransactionHandler) SetNext(next ResponseErrorHandler) ResponseErrorHandler {
	h.next = next
	return h
}

func (h *TransactionHandler) Handle(resp *model.Order) *HandlerError {
	if resp == nil || len(resp.Charges) == 0 {
		if h.next != nil {
			return h.next.Handle(resp)
		}
		return &HandlerError{Message: defaultErrorMessage, Code: http.StatusBadRequest}
	}

	result := &HandlerError{Message: transactionErrorMessage, Code: http.StatusBadRequest}
	if tx := resp.Charges[0].LastTransaction(); tx != nil {
		if msg, ok := model.TransactionStatusError(tx.Status); ok {
			result.Message = msg
		}
	}
	return result
}

// newResponseErrorChain builds transaction -> default.
func newResponseErrorChain() ResponseErrorHandler {
	return NewTransactionHandler().SetNext(NewDefaultHandler())
}
