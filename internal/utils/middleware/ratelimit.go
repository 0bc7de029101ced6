package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
)

const (
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RetryAfter is the header for retry time.
	RetryAfter = "Retry-After"
)

// RateLimitBySubject limits admin API calls per token subject, falling back
// to the client IP. A nil limiter or a non-positive limit disables it, and
// limiter failures let the request through.
func RateLimitBySubject(limiter outbound.RateLimiterPort, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if subject := GetSubject(c); subject != "" {
			key = "sub:" + subject
		}

		ctx := c.Request.Context()
		allowed, err := limiter.Allow(ctx, key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		remaining, _ := limiter.GetRemaining(ctx, key, limit, window)
		c.Header(RateLimitLimit, strconv.Itoa(limit))
		c.Header(RateLimitRemaining, strconv.Itoa(remaining))

		if !allowed {
			c.Header(RetryAfter, strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "Too many requests, please try again later",
				},
			})
			return
		}
		c.Next()
	}
}
