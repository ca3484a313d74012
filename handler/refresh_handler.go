package handler

import (
	"strings"

	"codearena/services"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

func RefreshTokenHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "Missing or invalid refresh token")
		return
	}

	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	userID, role, err := services.ValidateRefreshToken(refreshToken)
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	newAccessToken, err := services.GenerateToken(userID, role)
	if err != nil {
		utils.InternalError(c, "Failed to generate access token")
		return
	}

	newRefreshToken, err := services.GenerateRefreshToken(userID, role)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "refresh")

	utils.Success(c, gin.H{
		"token":   newAccessToken,
		"refresh": newRefreshToken,
	})
}
