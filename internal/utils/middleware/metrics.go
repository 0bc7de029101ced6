package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mundipagg/gateway-core/internal/utils/metrics"
)

// Metrics returns a middleware that records HTTP request metrics. Requests
// that match no route are recorded under "unmatched".
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
