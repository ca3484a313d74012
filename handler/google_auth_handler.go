package handler

import (
	"time"

	"codearena/model"
	"codearena/repository"
	"codearena/services"
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

// GoogleAuthHandler starts the student sign-in flow by redirecting to
// the Google consent screen with an anti-CSRF state cookie.
func GoogleAuthHandler(c *gin.Context, google *services.GoogleAuthenticator) {
	state := uuid.New().String()
	c.SetCookie(oauthStateCookie, state, int((10 * time.Minute).Seconds()), "/", "", true, true)
	c.Redirect(302, google.AuthURL(state))
}

// GoogleCallbackHandler finishes the flow: verifies state, exchanges the
// code, finds or creates the student account, issues tokens and
// registers the single active session.
func GoogleCallbackHandler(c *gin.Context, google *services.GoogleAuthenticator, userRepo *repository.UserRepo, guard *usecase.SessionGuard) {
	state := c.Query("state")
	code := c.Query("code")

	storedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != storedState {
		utils.TrackAuthAttempt("failure", "oauth_state")
		utils.BadRequest(c, "Invalid state parameter")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", true, true)

	if code == "" {
		utils.BadRequest(c, "Missing authorization code")
		return
	}

	identity, err := google.Exchange(c.Request.Context(), code)
	if err != nil {
		utils.TrackError("auth", "oauth_exchange")
		utils.TrackAuthAttempt("failure", "oauth_exchange")
		utils.Unauthorized(c, "Google sign-in failed")
		return
	}

	user, err := userRepo.FindByGoogleSubject(c.Request.Context(), identity.Subject)
	if err != nil {
		utils.TrackError("auth", "user_lookup")
		utils.InternalError(c, "Internal server error")
		return
	}

	if user == nil {
		// An email registered as professor/superadmin cannot double as
		// a student login.
		existing, err := userRepo.FindByEmail(c.Request.Context(), identity.Email)
		if err != nil {
			utils.InternalError(c, "Internal server error")
			return
		}
		if existing != nil {
			utils.TrackAuthAttempt("failure", "email_role_conflict")
			utils.Unauthorized(c, "This email uses credential login")
			return
		}

		user = &model.User{
			UserID:        utils.GenerateID(),
			Name:          identity.Name,
			Email:         identity.Email,
			Role:          model.RoleAluno,
			GoogleSubject: identity.Subject,
			CreatedAt:     time.Now(),
		}
		if err := userRepo.CreateUser(c.Request.Context(), user); err != nil {
			utils.TrackError("auth", "student_creation")
			utils.InternalError(c, "Internal server error")
			return
		}
	}

	token, err := services.GenerateToken(user.UserID, user.Role)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	clientIP := c.ClientIP()
	registration, err := guard.RegisterSession(c.Request.Context(), user.UserID, clientIP, c.Request.UserAgent())
	if err != nil {
		// A failed registration is a hard failure; continuing could
		// leave a previous session active alongside the new login.
		utils.TrackError("session", "registration")
		utils.InternalError(c, "Failed to register session")
		return
	}

	utils.TrackAuthAttempt("success", "google_login")

	utils.Success(c, gin.H{
		"token":               token,
		"refresh":             refreshToken,
		"sessionToken":        registration.SessionToken,
		"clientIP":            clientIP,
		"invalidatedSessions": registration.InvalidatedSessions,
		"user": gin.H{
			"id":    user.UserID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
