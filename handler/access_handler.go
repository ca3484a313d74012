package handler

import (
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

// CheckAccessHandler evaluates the exam access gate for the caller and
// the requesting address. The full decision is returned so the client
// can show exactly which gate denied access.
func CheckAccessHandler(c *gin.Context, gate *usecase.AccessGate) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	decision, err := gate.Evaluate(c.Request.Context(), c.Param("id"), user.UserID, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, decision)
}
