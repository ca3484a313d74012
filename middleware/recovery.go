package middleware

import (
	"log"
	"net/http"

	"codearena/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns panics into generic 500s; the panic value is
// logged server-side only.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
				utils.TrackError("http", "panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
