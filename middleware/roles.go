package middleware

import (
	"net/http"

	"codearena/model"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects requests whose authenticated role is not in the
// allow list. Runs after AuthMiddleware.
func RequireRoles(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
			c.Abort()
			return
		}

		role, ok := value.(model.Role)
		if !ok || !role.Valid() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown role"})
			c.Abort()
			return
		}

		for _, candidate := range allowed {
			if role == candidate {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}
