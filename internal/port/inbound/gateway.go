package inbound

import "github.com/gin-gonic/gin"

// WebhookHttpPort defines HTTP handler interface for gateway callbacks.
type WebhookHttpPort interface {
	// HandleMundipaggWebhook handles POST /webhooks/mundipagg
	HandleMundipaggWebhook(c *gin.Context)
}

// OrderHttpPort defines HTTP handler interface for order operations.
type OrderHttpPort interface {
	// CreateOrder handles POST /orders
	CreateOrder(c *gin.Context)

	// GetOrder handles GET /orders/:code
	GetOrder(c *gin.Context)

	// CancelOrder handles POST /orders/:code/cancel
	CancelOrder(c *gin.Context)
}

// SubscriptionHttpPort defines HTTP handler interface for subscription queries.
type SubscriptionHttpPort interface {
	// ListSubscriptions handles GET /subscriptions
	ListSubscriptions(c *gin.Context)

	// GetSubscription handles GET /subscriptions/:code
	GetSubscription(c *gin.Context)

	// RefreshSubscription handles POST /subscriptions/:code/refresh
	RefreshSubscription(c *gin.Context)
}

// HealthHttpPort defines HTTP handler interface for liveness checks.
type HealthHttpPort interface {
	// Health handles GET /healthz
	Health(c *gin.Context)
}
