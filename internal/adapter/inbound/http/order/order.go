package orderhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mundipagg/gateway-core/internal/domain/order"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/inbound"
	"github.com/mundipagg/gateway-core/internal/utils/metrics"
	"github.com/mundipagg/gateway-core/internal/utils/middleware"
)

// OrderHandler handles order HTTP requests from the store.
type OrderHandler struct {
	orderDomain order.OrderDomain
	metrics     *metrics.Metrics
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderDomain order.OrderDomain, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{orderDomain: orderDomain, metrics: m}
}

// RegisterRoutes registers order routes. Extra middleware (idempotency)
// only applies to order creation.
func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup, createMW ...gin.HandlerFunc) {
	orders := r.Group("/orders")
	{
		orders.POST("", append(createMW, h.CreateOrder)...)
		orders.GET("/:code", h.GetOrder)
		orders.POST("/:code/cancel", h.CancelOrder)
	}
}

// CreateOrder handles POST /orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    "invalid_request",
			Message: err.Error(),
		})
		return
	}

	idempotencyKey := c.GetHeader(middleware.IdempotencyKeyHeader)
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	po := req.ToPlatformOrder()
	ord, err := h.orderDomain.CreateOrderAtGateway(c.Request.Context(), po, idempotencyKey)
	if err != nil {
		h.metrics.RecordOrderCreated("failed")
		handleError(c, err)
		return
	}
	h.metrics.RecordOrderCreated(string(ord.Status))

	if ord.PlatformOrder != nil {
		po = ord.PlatformOrder
	}
	c.JSON(http.StatusCreated, model.NewOrderResponse(po, ord.Charges))
}

// GetOrder handles GET /orders/:code.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	ord, err := h.orderDomain.GetOrderByPlatformCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewOrderResponse(ord.PlatformOrder, ord.Charges))
}

// CancelOrder handles POST /orders/:code/cancel.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Param("code")

	ord, err := h.orderDomain.GetOrderByPlatformCode(ctx, code)
	if err != nil {
		handleError(c, err)
		return
	}

	switch {
	case ord.MundipaggID != "":
		err = h.orderDomain.CancelAtGateway(ctx, ord)
	case ord.PlatformOrder.MundipaggID != "":
		err = h.orderDomain.CancelAtGatewayByPlatformOrder(ctx, ord.PlatformOrder)
	default:
		c.JSON(http.StatusConflict, model.ErrorResponse{
			Code:    "order_not_submitted",
			Message: "Order was not submitted to the gateway",
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	ord, err = h.orderDomain.GetOrderByPlatformCode(ctx, code)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewOrderResponse(ord.PlatformOrder, ord.Charges))
}

// Compile-time check
var _ inbound.OrderHttpPort = (*OrderHandler)(nil)
