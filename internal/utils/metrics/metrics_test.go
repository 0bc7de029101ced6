package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return NewWithRegisterer(prometheus.NewRegistry(), "test")
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordHTTPRequest("POST", "/webhooks/mundipagg", 200, 15*time.Millisecond)
	m.RecordHTTPRequest("POST", "/webhooks/mundipagg", 200, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/v1/orders/:code", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/webhooks/mundipagg", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/orders/:code", "4xx")))
}

func TestRecordWebhook(t *testing.T) {
	m := newTestMetrics()

	m.RecordWebhook("charge.paid", "processed", 20*time.Millisecond)
	m.RecordWebhook("charge.paid", "duplicate", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhooksTotal.WithLabelValues("charge.paid", "processed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhooksTotal.WithLabelValues("charge.paid", "duplicate")))
}

func TestRecordGatewayRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordGatewayRequest("create_order", 200, 300*time.Millisecond)
	m.RecordGatewayRequest("cancel_charge", 500, time.Second)
	m.RecordGatewayRequest("cancel_charge", 0, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("create_order", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("cancel_charge", "5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("cancel_charge", "unknown")))
}

func TestSetCircuitOpen(t *testing.T) {
	m := newTestMetrics()

	m.SetCircuitOpen(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayCircuitOpen))
	m.SetCircuitOpen(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.GatewayCircuitOpen))
}

func TestOrderCounters(t *testing.T) {
	m := newTestMetrics()

	m.RecordOrderCreated("accepted")
	m.RecordChargeCanceled(true)
	m.RecordChargeCanceled(false)
	m.RecordChargeCanceled(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCreatedTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChargesCanceledTotal.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChargesCanceledTotal.WithLabelValues("failure")))
}

func TestStatusCodeToString(t *testing.T) {
	tests := map[int]string{
		201: "2xx",
		302: "3xx",
		422: "4xx",
		503: "5xx",
		0:   "unknown",
	}
	for code, want := range tests {
		assert.Equal(t, want, statusCodeToString(code))
	}
}
