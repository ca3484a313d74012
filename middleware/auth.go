package middleware

import (
	"net/http"
	"strings"

	"codearena/repository"
	"codearena/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and loads the account into
// the request context under "user", "user_id" and "role".
func AuthMiddleware(userRepo *repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := services.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
			c.Abort()
			return
		}
		if user == nil || user.Role != role {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown account"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.UserID)
		c.Set("role", user.Role)
		c.Next()
	}
}
