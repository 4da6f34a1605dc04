package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const PrincipalContextKey = "principal"

// Principal is the authenticated caller. StoreID is the JWT subject; a
// merchant's principal id is their store id.
type Principal struct {
	StoreID string
	Admin   bool
}

// Auth validates the Bearer token and stores the principal in the context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}
		admin, _ := claims["admin"].(bool)

		c.Set(PrincipalContextKey, Principal{StoreID: sub, Admin: admin})
		c.Next()
	}
}

// RequireAdmin aborts unless the principal carries the admin claim. Must
// run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := GetPrincipal(c)
		if err != nil || !p.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the principal set by Auth.
func GetPrincipal(c *gin.Context) (Principal, error) {
	if val, ok := c.Get(PrincipalContextKey); ok {
		if p, ok := val.(Principal); ok {
			return p, nil
		}
	}
	return Principal{}, errors.New("principal not found in context")
}
