package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// WebhookBasicAuth protects the gateway callback with HTTP basic auth. The
// password is checked against a bcrypt hash. An empty username disables the
// check, since the gateway may be configured without credentials.
func WebhookBasicAuth(username, passwordHash string) gin.HandlerFunc {
	if username == "" {
		return func(c *gin.Context) { c.Next() }
	}
	hash := []byte(passwordHash)

	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(username)) != 1 ||
			bcrypt.CompareHashAndPassword(hash, []byte(pass)) != nil {
			c.Header("WWW-Authenticate", `Basic realm="mundipagg"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid webhook credentials",
				},
			})
			return
		}
		c.Next()
	}
}
