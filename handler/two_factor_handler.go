package handler

import (
	"codearena/model"
	"codearena/repository"
	"codearena/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

// Setup2FAHandler generates a TOTP secret for a professor account. The
// secret only becomes active after Verify2FAHandler confirms a code.
func Setup2FAHandler(c *gin.Context, userRepo *repository.UserRepo) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if user.Role != model.RoleProfessor && user.Role != model.RoleSuperadmin {
		utils.Forbidden(c, "2FA is only available for credential accounts")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "CodeArena",
		AccountName: user.Email,
	})
	if err != nil {
		utils.InternalError(c, "Failed to generate 2FA secret")
		return
	}

	if err := userRepo.UpdateTwoFactor(c.Request.Context(), user.UserID, key.Secret(), false); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"secret":      key.Secret(),
		"otpauth_url": key.URL(),
	})
}

func Verify2FAHandler(c *gin.Context, userRepo *repository.UserRepo) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if user.TwoFactorSecret == "" {
		utils.BadRequest(c, "2FA setup not started")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		utils.TrackAuthAttempt("failure", "2fa_verify")
		utils.Unauthorized(c, "Invalid 2FA code")
		return
	}

	if err := userRepo.UpdateTwoFactor(c.Request.Context(), user.UserID, user.TwoFactorSecret, true); err != nil {
		respondError(c, err)
		return
	}

	utils.TrackAuthAttempt("success", "2fa_verify")
	utils.Success(c, gin.H{"message": "2FA enabled"})
}
