package middleware

import (
	"net/http"
	"strings"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthRequired resolves the caller from a bearer token or the session cookie
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth := c.GetHeader("Authorization"); auth != "" {
			parts := strings.Fields(auth)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
				return
			}
			principal, err := ParseToken(parts[1])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.Set(principalKey, principal)
			c.Next()
			return
		}

		session := GetSession(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.Set(principalKey, session.Principal())
		c.Next()
	}
}

// ManagerRequired rejects callers without manager capability; use after AuthRequired
func ManagerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || !principal.CanManage() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Manager access required", "kind": "authorization"})
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller stored by AuthRequired
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}
