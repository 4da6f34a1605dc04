package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const SessionContextKey = "sessionID"

// Session requires the buyer's browser-generated session id header. The
// cart is keyed on it; without one there is nothing to attach a cart to.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing X-Session-ID header"})
			return
		}
		c.Set(SessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session.
func GetSessionID(c *gin.Context) (string, error) {
	if val, ok := c.Get(SessionContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("session ID not found in context")
}
