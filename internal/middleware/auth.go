package middleware

import (
	"errors"
	"net/http"
	"strings"

	"AwarenessSimulator_SecurityProject/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	ContextParticipant = "participant"
	ContextToken       = "token"
)

// AuthMiddleware accepts "Authorization: Bearer ..." or, for browser WebSocket and
// audio clients that cannot set headers, a ?token= query parameter.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ContextParticipant, claims.Participant())
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return "", false
		}
		return strings.TrimPrefix(header, "Bearer "), true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}
