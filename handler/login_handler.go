package handler

import (
	"codearena/dto"
	"codearena/model"
	"codearena/repository"
	"codearena/services"
	"codearena/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

// LoginHandler authenticates credential accounts: professors and the
// superadmin. Students sign in via Google OAuth instead.
func LoginHandler(c *gin.Context, userRepo *repository.UserRepo) {
	var loginReq dto.LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := userRepo.FindByEmail(c.Request.Context(), loginReq.Email)
	if err != nil {
		utils.TrackError("auth", "user_lookup")
		utils.InternalError(c, "Internal server error")
		return
	}
	if user == nil || user.PasswordHash == "" {
		utils.TrackAuthAttempt("failure", "user_not_found")
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	switch user.Role {
	case model.RoleProfessor, model.RoleSuperadmin:
	case model.RoleAluno:
		utils.TrackAuthAttempt("failure", "wrong_login_method")
		utils.Unauthorized(c, "Students sign in with Google")
		return
	default:
		utils.TrackAuthAttempt("failure", "unknown_role")
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	match, err := services.VerifyPassword(user.PasswordHash, loginReq.Password)
	if err != nil || !match {
		utils.TrackAuthAttempt("failure", "invalid_password")
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.TwoFactorEnabled {
		if loginReq.TwoFactorCode == "" {
			utils.TrackAuthAttempt("pending", "2fa_required")
			utils.Success(c, gin.H{
				"requires_2fa": true,
				"message":      "2FA code required",
			})
			return
		}
		if !totp.Validate(loginReq.TwoFactorCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "invalid_2fa")
			utils.Unauthorized(c, "Invalid 2FA code")
			return
		}
		utils.TrackAuthAttempt("success", "2fa")
	}

	token, err := services.GenerateToken(user.UserID, user.Role)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		utils.TrackError("auth", "refresh_token_generation")
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "login")

	utils.Success(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"refresh": refreshToken,
		"user": gin.H{
			"id":    user.UserID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
