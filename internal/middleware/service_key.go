package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceKeyMiddleware guards internal endpoints (metrics) with a shared key sent in
// X-Service-Key. An empty key disables the check.
func ServiceKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		clientKey := c.GetHeader("X-Service-Key")
		if subtle.ConstantTimeCompare([]byte(clientKey), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid service key"})
			return
		}
		c.Next()
	}
}
