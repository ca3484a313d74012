package middleware

import (
	"codearena/model"
	"codearena/repository"

	"github.com/gin-gonic/gin"
)

// SessionActivityMiddleware records request activity on the session a
// student presents via the X-Session-Token header. The staleness check
// itself stays read-only; this is the only place last_activity_at
// advances. Non-student requests pass through untouched.
func SessionActivityMiddleware(sessionRepo *repository.SessionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Session-Token")
		if token == "" {
			c.Next()
			return
		}

		if role, ok := c.Get("role"); !ok || role != model.RoleAluno {
			c.Next()
			return
		}

		session, err := sessionRepo.GetSession(c.Request.Context(), token)
		if err != nil || session == nil || !session.IsActive {
			c.Next()
			return
		}

		userID, _ := c.Get("user_id")
		if session.UserID != userID {
			c.Next()
			return
		}

		// Best effort; a failed touch never blocks the request.
		_ = sessionRepo.TouchSession(c.Request.Context(), token)
		c.Set("session", session)
		c.Next()
	}
}
