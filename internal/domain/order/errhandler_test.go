package order

import (
	"net/http"
	"testing"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/stretchr/testify/assert"
)

func failedResponse(status model.TransactionStatus) *model.Order {
	return &model.Order{
		MundipaggID: "or_1",
		Status:      model.OrderStatusFailed,
		Charges: []*model.Charge{{
			MundipaggID:  "ch_1",
			Status:       model.ChargeStatusFailed,
			Transactions: []*model.Transaction{{MundipaggID: "tran_1", Status: status}},
		}},
	}
}

func TestResponseErrorChain(t *testing.T) {
	t.Run("transaction status message", func(t *testing.T) {
		herr := newResponseErrorChain().Handle(failedResponse(model.TransactionStatusNotAuthorized))
		assert.Equal(t, "Não autorizada", herr.Message)
		assert.Equal(t, http.StatusBadRequest, herr.Code)
	})

	t.Run("unmapped status keeps transaction message", func(t *testing.T) {
		herr := newResponseErrorChain().Handle(failedResponse("unknown"))
		assert.Equal(t, transactionErrorMessage, herr.Message)
	})

	t.Run("charge without transactions", func(t *testing.T) {
		resp := &model.Order{Charges: []*model.Charge{{MundipaggID: "ch_1"}}}
		herr := newResponseErrorChain().Handle(resp)
		assert.Equal(t, transactionErrorMessage, herr.Message)
	})

	t.Run("no charges falls through to default", func(t *testing.T) {
		herr := newResponseErrorChain().Handle(&model.Order{Status: model.OrderStatusFailed})
		assert.Equal(t, defaultErrorMessage, herr.Message)
		assert.Equal(t, http.StatusBadRequest, herr.Code)
	})

	t.Run("default alone", func(t *testing.T) {
		herr := NewDefaultHandler().Handle(failedResponse(model.TransactionStatusFailed))
		assert.Equal(t, defaultErrorMessage, herr.Message)
		assert.Equal(t, defaultErrorMessage, herr.Error())
	})
}

func TestSetNext_ReturnsReceiver(t *testing.T) {
	h := NewTransactionHandler()
	assert.Same(t, h, h.SetNext(NewDefaultHandler()))
}
