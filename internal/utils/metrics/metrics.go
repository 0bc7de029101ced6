package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Webhook metrics
	WebhooksTotal          *prometheus.CounterVec
	WebhookProcessDuration *prometheus.HistogramVec

	// Gateway metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec
	GatewayCircuitOpen     prometheus.Gauge

	// Order metrics
	OrdersCreatedTotal   *prometheus.CounterVec
	ChargesCanceledTotal *prometheus.CounterVec
}

// New creates a new Metrics instance registered on the default registry.
func New(namespace string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, namespace)
}

// NewWithRegisterer creates a new Metrics instance registered on reg.
func NewWithRegisterer(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "mundipagg"
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		WebhooksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "events_total",
				Help:      "Total number of gateway webhooks by type and outcome",
			},
			[]string{"type", "result"}, // result: processed, ignored, duplicate, failed
		),
		WebhookProcessDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "process_duration_seconds",
				Help:      "Webhook processing duration in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"type"},
		),

		GatewayRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "requests_total",
				Help:      "Total number of calls to the payment gateway",
			},
			[]string{"operation", "status"},
		),
		GatewayRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "request_duration_seconds",
				Help:      "Payment gateway call duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
		GatewayCircuitOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "circuit_open",
				Help:      "Gateway circuit breaker state (1=open, 0=closed or half-open)",
			},
		),

		OrdersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "created_total",
				Help:      "Total number of orders sent to the gateway",
			},
			[]string{"result"}, // result: accepted, rejected, error
		),
		ChargesCanceledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "charges_canceled_total",
				Help:      "Total number of charge cancellations requested at the gateway",
			},
			[]string{"result"}, // result: success, failure
		),
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := statusCodeToString(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordWebhook records a processed webhook.
func (m *Metrics) RecordWebhook(eventType, result string, duration time.Duration) {
	m.WebhooksTotal.WithLabelValues(eventType, result).Inc()
	m.WebhookProcessDuration.WithLabelValues(eventType).Observe(duration.Seconds())
}

// RecordGatewayRequest records a call to the payment gateway.
func (m *Metrics) RecordGatewayRequest(operation string, status int, duration time.Duration) {
	statusStr := statusCodeToString(status)
	m.GatewayRequestsTotal.WithLabelValues(operation, statusStr).Inc()
	m.GatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetCircuitOpen sets the gateway circuit breaker state.
func (m *Metrics) SetCircuitOpen(open bool) {
	value := 0.0
	if open {
		value = 1.0
	}
	m.GatewayCircuitOpen.Set(value)
}

// RecordOrderCreated records the outcome of an order creation.
func (m *Metrics) RecordOrderCreated(result string) {
	m.OrdersCreatedTotal.WithLabelValues(result).Inc()
}

// RecordChargeCanceled records the outcome of a charge cancellation.
func (m *Metrics) RecordChargeCanceled(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.ChargesCanceledTotal.WithLabelValues(result).Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
