package controllers

import (
	"net/http"
	"time"

	"event-portal/dashboard"
	"event-portal/helpers"
	"event-portal/middleware"
	"event-portal/models"
	"event-portal/sessions"

	"github.com/gin-gonic/gin"
)

type sessionResponse struct {
	Token             string         `json:"token"`
	RequiresTwoFactor bool           `json:"requires_2fa"`
	User              *models.User   `json:"user,omitempty"`
	Dashboard         dashboard.Kind `json:"dashboard,omitempty"`
	ExpiresAt         time.Time      `json:"expires_at"`
}

func Login(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		var req models.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		resp, err := env.API.Login(ctx, req.Email, req.Password)
		if err != nil {
			respondError(c, env.Log, "login_failed", err)
			return
		}

		sess := sessions.New(env.SessionTTL)
		sess.Apply(resp)
		if sess.Authenticated() && sess.User == nil {
			user, err := env.API.CurrentUser(ctx, sess.AccessToken)
			if err != nil {
				respondError(c, env.Log, "login_failed", err)
				return
			}
			sess.SetUser(user)
		}

		env.Log.Info("login", "session started", requestID(c), map[string]interface{}{
			"session_id":   sess.ID,
			"requires_2fa": sess.Pending2FA,
		})
		issueSession(c, env, sess, http.StatusOK)
	}
}

// VerifyTwoFactor exchanges the code and the pending temp token for a full login.
func VerifyTwoFactor(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		sess := middleware.Session(c)
		if !sess.Pending2FA {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "CONFLICT", Message: "No two-factor challenge is pending"})
			return
		}

		var req models.TwoFactorRequest
		if !bindJSON(c, &req) {
			return
		}

		resp, err := env.API.VerifyTwoFactor(ctx, req.Code, sess.TempToken)
		if err != nil {
			respondError(c, env.Log, "verify_2fa_failed", err)
			return
		}
		if resp.RequiresTwoFactor || resp.AccessToken == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "UNAUTHORIZED", Message: "Two-factor verification was not accepted"})
			return
		}

		sess.Apply(resp)
		if sess.User == nil {
			user, err := env.API.CurrentUser(ctx, sess.AccessToken)
			if err != nil {
				respondError(c, env.Log, "verify_2fa_failed", err)
				return
			}
			sess.SetUser(user)
		}
		issueSession(c, env, sess, http.StatusOK)
	}
}

func Register(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		var req models.RegisterRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := env.API.Register(ctx, req)
		if err != nil {
			respondError(c, env.Log, "register_failed", err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// Me refreshes the signed-in user from the platform.
func Me(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		sess := middleware.Session(c)
		user, err := env.API.CurrentUser(ctx, sess.AccessToken)
		if err != nil {
			respondError(c, env.Log, "current_user_failed", err)
			return
		}
		sess.SetUser(user)
		if err := env.Sessions.Save(ctx, sess); err != nil {
			env.Log.Error("session_save_failed", "could not store refreshed user", requestID(c), err, nil)
		}
		c.JSON(http.StatusOK, user)
	}
}

func Logout(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		sess := middleware.Session(c)
		if err := env.API.Logout(ctx, sess.AccessToken); err != nil {
			// the local session ends regardless
			env.Log.Warn("platform_logout_failed", err.Error(), requestID(c), nil)
		}
		if err := env.Sessions.Delete(ctx, sess.ID); err != nil {
			env.Log.Error("session_delete_failed", "could not delete session", requestID(c), err, nil)
		}
		env.SessionEnded(sess.ID)

		c.SetCookie(middleware.TokenCookie, "", -1, "/", "", env.SecureCookie, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

func SetupTwoFactor(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		sess := middleware.Session(c)
		setup, err := env.API.SetupTwoFactor(ctx, sess.AccessToken)
		if err != nil {
			respondError(c, env.Log, "setup_2fa_failed", err)
			return
		}
		c.JSON(http.StatusOK, setup)
	}
}

// ConfirmTwoFactor enables two-factor login once the first code checks out.
func ConfirmTwoFactor(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		var req models.TwoFactorRequest
		if !bindJSON(c, &req) {
			return
		}

		sess := middleware.Session(c)
		if err := env.API.ConfirmTwoFactor(ctx, sess.AccessToken, req.Code); err != nil {
			respondError(c, env.Log, "confirm_2fa_failed", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication enabled"})
	}
}

// issueSession stores the session and hands the browser its portal token.
func issueSession(c *gin.Context, env *Env, sess *sessions.Session, status int) {
	ctx := c.Request.Context()
	if err := env.Sessions.Save(ctx, sess); err != nil {
		env.Log.Error("session_save_failed", "could not store session", requestID(c), err, nil)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "SESSION_STORE_UNAVAILABLE", Message: "Could not start a session"})
		return
	}

	env.SessionSeen(sess)

	uid := 0
	if sess.User != nil {
		uid = sess.User.ID
	}
	token, err := helpers.GenerateSessionToken(env.SecretKey, sess.ID, uid, sess.Role, sess.ExpiresAt)
	if err != nil {
		env.Log.Error("session_token_failed", "could not sign session token", requestID(c), err, nil)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "INTERNAL_ERROR", Message: "Could not start a session"})
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", env.SecureCookie, true)
	c.JSON(status, sessionResponse{
		Token:             token,
		RequiresTwoFactor: sess.Pending2FA,
		User:              sess.User,
		Dashboard:         sess.View,
		ExpiresAt:         sess.ExpiresAt,
	})
}
