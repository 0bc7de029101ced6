package mundipagg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"github.com/mundipagg/gateway-core/internal/shared/config"
	apperrors "github.com/mundipagg/gateway-core/internal/shared/errors"
	"github.com/mundipagg/gateway-core/internal/utils/metrics"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Mundipagg core API.
const DefaultBaseURL = "https://api.mundipagg.com/core/v1"

// response is a raw gateway answer.
type response struct {
	status int
	body   []byte
}

// Client implements outbound.MundipaggPort over the Mundipagg REST API.
type Client struct {
	http      *retryablehttp.Client
	breaker   *gobreaker.CircuitBreaker[*response]
	baseURL   string
	secretKey string
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewClient creates a gateway client. m may be nil.
func NewClient(cfg *config.GatewayConfig, m *metrics.Metrics, logger *zap.Logger) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		metrics:   m,
		logger:    logger.Named("mundipagg"),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	if cfg.Timeout > 0 {
		rc.HTTPClient.Timeout = cfg.Timeout
	}
	rc.Logger = &retryLogger{logger: c.logger}
	// Hand the last response back instead of a generic "giving up" error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c.http = rc

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	timeout := cfg.CircuitTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	c.breaker = gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "mundipagg",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("Circuit breaker state changed",
				zap.String("from", from.String()), zap.String("to", to.String()))
			if c.metrics != nil {
				c.metrics.SetCircuitOpen(to == gobreaker.StateOpen)
			}
		},
	})

	return c
}

func (c *Client) CreateOrder(ctx context.Context, order *model.PaymentOrder, idempotencyKey string) (*model.Order, error) {
	resp, err := c.do(ctx, "create_order", http.MethodPost, "/orders", newOrderRequest(order), idempotencyKey)
	if err != nil {
		return nil, err
	}

	var out orderResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return out.toModel(), nil
}

func (c *Client) GetOrder(ctx context.Context, mundipaggID string) (*model.Order, error) {
	resp, err := c.do(ctx, "get_order", http.MethodGet, "/orders/"+mundipaggID, nil, "")
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out orderResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return out.toModel(), nil
}

func (c *Client) CancelCharge(ctx context.Context, chargeID string, amount int64) (*model.Charge, error) {
	resp, err := c.do(ctx, "cancel_charge", http.MethodDelete, "/charges/"+chargeID,
		&cancelChargeRequest{Amount: amount}, "")
	if c.metrics != nil {
		c.metrics.RecordChargeCanceled(err == nil)
	}
	if err != nil {
		return nil, err
	}

	var out chargeResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("decode charge: %w", err)
	}
	charge := out.toModel()
	charge.AddTransaction(out.LastTransaction.toModel(charge.MundipaggID))
	return charge, nil
}

func (c *Client) GetSubscription(ctx context.Context, mundipaggID string) (*model.Subscription, error) {
	resp, err := c.do(ctx, "get_subscription", http.MethodGet, "/subscriptions/"+mundipaggID, nil, "")
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out subscriptionResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	return out.toModel(), nil
}

// do sends one call through the circuit breaker. Only transport failures and
// 5xx answers count against the breaker.
func (c *Client) do(ctx context.Context, operation, method, path string, payload any, idempotencyKey string) (*response, error) {
	start := time.Now()

	resp, err := c.breaker.Execute(func() (*response, error) {
		return c.send(ctx, method, path, payload, idempotencyKey)
	})

	status := 0
	if resp != nil {
		status = resp.status
	}
	if c.metrics != nil {
		c.metrics.RecordGatewayRequest(operation, status, time.Since(start))
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("Gateway call rejected by circuit breaker", zap.String("operation", operation))
		return nil, apperrors.Unavailable("")
	}
	if err != nil {
		c.logger.Error("Gateway call failed",
			zap.String("operation", operation), zap.Int("status", status), zap.Error(err))
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, apperrors.Gateway(operation+" failed", err)
	}
	if resp.status >= http.StatusBadRequest {
		apiErr := newAPIError(resp)
		c.logger.Info("Gateway rejected call",
			zap.String("operation", operation), zap.Int("status", resp.status), zap.String("reason", apiErr.Message))
		return nil, apiErr
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any, idempotencyKey string) (*response, error) {
	var body any
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = raw
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	resp := &response{status: httpResp.StatusCode, body: raw}
	if resp.status >= http.StatusInternalServerError {
		return resp, newAPIError(resp)
	}
	return resp, nil
}

func newAPIError(resp *response) *APIError {
	apiErr := &APIError{StatusCode: resp.status}
	var out errorResponse
	if err := json.Unmarshal(resp.body, &out); err == nil {
		apiErr.Message = out.Message
		apiErr.Errors = out.Errors
	}
	return apiErr
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// retryLogger adapts zap to retryablehttp.LeveledLogger.
type retryLogger struct {
	logger *zap.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Warnw(msg, keysAndValues...)
}

// Compile-time interface assertions
var _ outbound.MundipaggPort = (*Client)(nil)
var _ retryablehttp.LeveledLogger = (*retryLogger)(nil)
