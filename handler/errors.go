package handler

import (
	"errors"
	"log"

	"codearena/model"
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase failures onto the HTTP error taxonomy.
// Internal failures get a generic body; the detail stays in the log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, "Resource not found")
	case errors.Is(err, usecase.ErrForbidden):
		utils.Forbidden(c, "Insufficient permissions")
	case errors.Is(err, usecase.ErrValidation):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.InternalError(c, "Internal server error")
	}
}

// currentUser pulls the authenticated account set by AuthMiddleware.
func currentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	user, ok := value.(*model.User)
	if !ok || user == nil {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	return user, true
}
