package subscriptionhttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mundipagg/gateway-core/internal/domain/subscription"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/inbound"
	apperrors "github.com/mundipagg/gateway-core/internal/shared/errors"
)

// SubscriptionHandler handles subscription HTTP requests.
type SubscriptionHandler struct {
	domain subscription.SubscriptionDomain
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(domain subscription.SubscriptionDomain) *SubscriptionHandler {
	return &SubscriptionHandler{domain: domain}
}

// RegisterRoutes registers subscription routes.
func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	subscriptions := r.Group("/subscriptions")
	{
		subscriptions.GET("", h.ListSubscriptions)
		subscriptions.GET("/:code", h.GetSubscription)
		subscriptions.POST("/:code/refresh", h.RefreshSubscription)
	}
}

// ListSubscriptions handles GET /subscriptions.
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	var req model.SubscriptionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    "invalid_request",
			Message: err.Error(),
		})
		return
	}

	var (
		subs []*model.Subscription
		err  error
	)
	if req.CustomerID != "" {
		subs, err = h.domain.ListByCustomer(c.Request.Context(), req.CustomerID)
	} else {
		subs, err = h.domain.List(c.Request.Context(), req.Limit, req.ListDisabled)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewListResponse(subs))
}

// GetSubscription handles GET /subscriptions/:code.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sub, err := h.domain.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// RefreshSubscription handles POST /subscriptions/:code/refresh.
func (h *SubscriptionHandler) RefreshSubscription(c *gin.Context) {
	sub, err := h.domain.Refresh(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// handleError maps subscription domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Code: "subscription_not_found", Message: "Subscription not found"})
	case errors.Is(err, subscription.ErrMissingGatewayID):
		c.JSON(http.StatusConflict, model.ErrorResponse{Code: "subscription_not_synced", Message: err.Error()})
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{Code: "gateway_unavailable", Message: "Payment gateway temporarily unavailable"})
	case errors.Is(err, apperrors.ErrGateway):
		c.JSON(http.StatusBadGateway, model.ErrorResponse{Code: "gateway_error", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Code: "internal_error", Message: "Internal server error"})
	}
}

// Compile-time check
var _ inbound.SubscriptionHttpPort = (*SubscriptionHandler)(nil)
