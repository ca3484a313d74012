package handler

import (
	"codearena/dto"
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

func CreateInviteHandler(c *gin.Context, invites *usecase.InviteService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	invite, err := invites.CreateInvite(c.Request.Context(), user, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, gin.H{
		"token":      invite.Token,
		"email":      invite.Email,
		"expires_at": invite.ExpiresAt,
	})
}

func RedeemInviteHandler(c *gin.Context, invites *usecase.InviteService) {
	var req dto.RedeemInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := invites.Redeem(c.Request.Context(), req.Token, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, gin.H{
		"id":    user.UserID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}
