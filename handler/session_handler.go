package handler

import (
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

// CheckActiveHandler reports whether the caller's most recent session is
// still the recognized one and still fresh. Advisory only; it never
// invalidates anything.
func CheckActiveHandler(c *gin.Context, guard *usecase.SessionGuard) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	status, err := guard.CheckActive(c.Request.Context(), user.UserID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, status)
}

// LogoutHandler deactivates the session presented by the request.
func LogoutHandler(c *gin.Context, guard *usecase.SessionGuard) {
	if _, ok := currentUser(c); !ok {
		return
	}

	token := c.GetHeader("X-Session-Token")
	if token == "" {
		utils.BadRequest(c, "Missing session token")
		return
	}

	if err := guard.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Logged out"})
}
