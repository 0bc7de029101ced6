package mundipagg

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/shared/config"
	apperrors "github.com/mundipagg/gateway-core/internal/shared/errors"
	"github.com/mundipagg/gateway-core/internal/utils/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const orderJSON = `{
	"id":     "or_1",
	"code":   "100000001",
	"status": "paid",
	"charges": [{
		"id":             "ch_1",
		"code":           "100000001",
		"amount":         10000,
		"paid_amount":    10000,
		"status":         "paid",
		"payment_method": "credit_card",
		"last_transaction": {
			"id":                 "tran_1",
			"transaction_type":   "credit_card",
			"amount":             10000,
			"status":             "captured",
			"acquirer_name":      "simulator",
			"acquirer_tid":       "123",
			"acquirer_nsu":       "456",
			"acquirer_auth_code": "789",
			"acquirer_message":   "Transação capturada com sucesso",
			"created_at": "2024-05-01T12:00:00Z"
		}
	}]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	cfg := &config.GatewayConfig{
		BaseURL:          srv.URL,
		SecretKey:        "sk_test",
		Timeout:          2 * time.Second,
		RetryMax:         1,
		RetryWaitMin:     time.Millisecond,
		RetryWaitMax:     2 * time.Millisecond,
		FailureThreshold: 2,
		CircuitTimeout:   time.Minute,
	}
	return NewClient(cfg, m, zap.NewNop()), m
}

func TestCreateOrder(t *testing.T) {
	var got map[string]any
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test", user)
		assert.Empty(t, pass)

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(orderJSON))
	})

	order, err := client.CreateOrder(context.Background(), &model.PaymentOrder{
		Code:   "100000001",
		Amount: 10000,
		Customer: &model.Customer{
			Name:    "Maria", Email: "maria@example.com", Document: "12345678909", Type: model.CustomerTypeIndividual,
			Address: &model.Address{Street: "Rua A", Number: "10", Neighborhood: "Centro", ZipCode: "01000000", City: "São Paulo", State: "SP", Country: "BR"},
		},
		Items:    []*model.Item{{Code: "sku-1", Description: "Camiseta", Amount: 10000, Quantity: 1}},
		Payments: []*model.Payment{{Method: model.PaymentMethodCreditCard, Amount: 10000, Installments: 1, CardToken: "tok_1", Capture: true}},
		Metadata: map[string]string{"moduleVersion": "1.0.0"},
	}, "key-1")

	require.NoError(t, err)
	assert.Equal(t, "or_1", order.MundipaggID)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	require.Len(t, order.Charges, 1)
	charge := order.Charges[0]
	assert.Equal(t, "or_1", charge.OrderMundipaggID)
	assert.Equal(t, model.ChargeStatusPaid, charge.Status)
	require.NotNil(t, charge.LastTransaction())
	assert.Equal(t, model.TransactionStatusCaptured, charge.LastTransaction().Status)
	assert.Equal(t, "123", charge.LastTransaction().AcquirerTID)

	assert.Equal(t, "100000001", got["code"])
	customer := got["customer"].(map[string]any)
	assert.Equal(t, "10,Rua A,Centro", customer["address"].(map[string]any)["line_1"])
	payment := got["payments"].([]any)[0].(map[string]any)
	assert.Equal(t, "credit_card", payment["payment_method"])
	assert.Equal(t, "tok_1", payment["credit_card"].(map[string]any)["card_token"])
	assert.NotContains(t, payment, "boleto")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("create_order", "2xx")))
}

func TestGetOrder_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Order not found"}`))
	})

	order, err := client.GetOrder(context.Background(), "or_missing")

	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestCancelCharge(t *testing.T) {
	t.Run("canceled", func(t *testing.T) {
		client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/charges/ch_1", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":"ch_1","amount":10000,"canceled_amount":10000,"status":"canceled",
				"last_transaction":{"id":"tran_2","amount":10000,"status":"voided"}}`))
		})

		charge, err := client.CancelCharge(context.Background(), "ch_1", 0)

		require.NoError(t, err)
		assert.Equal(t, model.ChargeStatusCanceled, charge.Status)
		assert.Equal(t, int64(10000), charge.CanceledAmount)
		assert.True(t, charge.HasTransaction("tran_2"))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ChargesCanceledTotal.WithLabelValues("success")))
	})

	t.Run("refused", func(t *testing.T) {
		client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"Charge already canceled"}`))
		})

		_, err := client.CancelCharge(context.Background(), "ch_1", 0)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Charge already canceled", err.Error())
		assert.Equal(t, http.StatusBadGateway, apperrors.GetStatusCode(err))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ChargesCanceledTotal.WithLabelValues("failure")))
	})
}

func TestGetSubscription(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subscriptions/sub_1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"sub_1","code":"100000002","status":"active","installments":1,
			"payment_method":"credit_card","interval":"month","interval_count":1,"billing_type":"prepaid",
			"customer":{"id":"cus_1"},
			"current_cycle":{"id":"cycle_1","start_at":"2024-05-01T00:00:00Z","end_at":"2024-05-31T23:59:59Z"}}`))
	})

	sub, err := client.GetSubscription(context.Background(), "sub_1")

	require.NoError(t, err)
	assert.Equal(t, "100000002", sub.PlatformOrderCode)
	assert.Equal(t, "cus_1", sub.CustomerID)
	assert.Equal(t, model.IntervalMonth, sub.IntervalType)
	require.NotNil(t, sub.CurrentCycle)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), sub.CurrentCycle.CycleStart)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(orderJSON))
	})

	order, err := client.GetOrder(context.Background(), "or_1")

	require.NoError(t, err)
	assert.Equal(t, "or_1", order.MundipaggID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal error"}`))
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.GetSubscription(ctx, "sub_1")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	}
	before := calls.Load()

	_, err := client.GetSubscription(ctx, "sub_1")

	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, before, calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayCircuitOpen))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(&config.GatewayConfig{BaseURL: srv.URL, SecretKey: "sk_test"}, nil, zap.NewNop())

	_, err := client.GetOrder(context.Background(), "or_1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrGateway)
	assert.Equal(t, http.StatusBadGateway, apperrors.GetStatusCode(err))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "The request is invalid.",
		Errors: map[string][]string{
			"order.payments": {"The payments field is required."},
			"order.items":    {"The items field is required."},
		},
	}

	assert.Equal(t, "The request is invalid. (order.items: The items field is required.; "+
		"order.payments: The payments field is required.)", err.Error())
	assert.Equal(t, "mundipagg returned status 500", (&APIError{StatusCode: 500}).Error())
}
