package webhookhttp

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mundipagg/gateway-core/internal/adapter/outbound/mundipagg"
	"github.com/mundipagg/gateway-core/internal/domain/webhook"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/inbound"
	apperrors "github.com/mundipagg/gateway-core/internal/shared/errors"
	"github.com/mundipagg/gateway-core/internal/utils/metrics"
	"github.com/mundipagg/gateway-core/internal/utils/requestctx"
	"go.uber.org/zap"
)

// maxWebhookBody bounds the callback body read into memory.
const maxWebhookBody = 1 << 20

// WebhookHandler handles gateway callbacks.
type WebhookHandler struct {
	domain  webhook.WebhookDomain
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(domain webhook.WebhookDomain, m *metrics.Metrics, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{domain: domain, metrics: m, logger: logger}
}

// RegisterRoutes registers webhook routes. Extra middleware (basic auth)
// only applies to the callback route.
func (h *WebhookHandler) RegisterRoutes(r gin.IRouter, mw ...gin.HandlerFunc) {
	webhooks := r.Group("/webhooks", mw...)
	{
		webhooks.POST("/mundipagg", h.HandleMundipaggWebhook)
	}
}

// HandleMundipaggWebhook handles POST /webhooks/mundipagg.
func (h *WebhookHandler) HandleMundipaggWebhook(c *gin.Context) {
	start := time.Now()
	log := requestctx.Logger(c.Request.Context(), h.logger)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    "invalid_payload",
			Message: "Failed to read request body",
		})
		return
	}

	hook, err := mundipagg.ParseWebhook(body)
	if err != nil {
		log.Warn("Invalid webhook payload", zap.Error(err))
		h.metrics.RecordWebhook("unknown", "invalid", time.Since(start))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    "invalid_payload",
			Message: "Invalid webhook payload",
		})
		return
	}

	log.Info("Webhook received", zap.String("hook_id", hook.HookID), zap.String("type", hook.Type))

	result, err := h.domain.Handle(c.Request.Context(), hook)
	if err != nil {
		h.metrics.RecordWebhook(hook.Type, "error", time.Since(start))
		h.handleError(c, err)
		return
	}

	code := result.Code
	if code == 0 {
		code = http.StatusOK
	}
	h.metrics.RecordWebhook(hook.Type, "handled", time.Since(start))
	c.JSON(code, model.MessageResponse{Message: result.Message})
}

// handleError answers the gateway with the failure message so it shows up in
// the gateway dashboard; 5xx makes the gateway retry the delivery.
func (h *WebhookHandler) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		c.JSON(appErr.StatusCode, model.MessageResponse{Message: appErr.Message})
	case errors.Is(err, webhook.ErrInvalidWebhook), errors.Is(err, webhook.ErrMissingCharge):
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: err.Error()})
	default:
		requestctx.Logger(c.Request.Context(), h.logger).Error("Webhook failed", zap.Error(err))
		c.JSON(apperrors.GetStatusCode(err), model.MessageResponse{Message: "Internal server error"})
	}
}

// Compile-time check
var _ inbound.WebhookHttpPort = (*WebhookHandler)(nil)
