package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"event-portal/helpers"
	"event-portal/models"
	"event-portal/sessions"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey   = "session"
	TokenCookie  = "token"
	TokenHeader  = "token"
	requestIDKey = "request_id"
)

// SessionObserver hears about sessions as requests find them live or gone.
// The per-session state kept beside the store hangs off these calls.
type SessionObserver interface {
	SessionSeen(sess *sessions.Session)
	SessionEnded(sessionID string)
}

// Authentication requires a portal session whose platform login is complete.
// observer may be nil.
func Authentication(store sessions.Store, secret string, observer SessionObserver) gin.HandlerFunc {
	return authenticate(store, secret, observer, false)
}

// PendingAuthentication also admits a session that is waiting for its second
// factor. Only the verification route uses it.
func PendingAuthentication(store sessions.Store, secret string, observer SessionObserver) gin.HandlerFunc {
	return authenticate(store, secret, observer, true)
}

func authenticate(store sessions.Store, secret string, observer SessionObserver, allowPending bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := tokenFrom(c)
		if clientToken == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "no session token provided")
			return
		}
		claims, msg := helpers.ValidateToken(secret, clientToken)
		if msg != "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", msg)
			return
		}

		sess, err := store.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, sessions.ErrNotFound) {
				if observer != nil {
					observer.SessionEnded(claims.SessionID)
				}
				abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "session has ended")
				return
			}
			abort(c, http.StatusServiceUnavailable, "SESSION_STORE_UNAVAILABLE", err.Error())
			return
		}
		if sess.Expired(time.Now()) {
			if observer != nil {
				observer.SessionEnded(sess.ID)
			}
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "session has ended")
			return
		}
		if !sess.Authenticated() && !(allowPending && sess.Pending2FA) {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "login is not complete")
			return
		}

		if observer != nil {
			observer.SessionSeen(sess)
		}
		c.Set(sessionKey, sess)
		c.Set("uid", claims.Uid)
		c.Set("role", sess.Role)
		c.Next()
	}
}

// RequireRoles answers 403 unless the session's role is one of roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := Session(c)
		if sess == nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "no session")
			return
		}
		for _, r := range roles {
			if sess.Role == r {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "FORBIDDEN", "your role cannot access this resource")
	}
}

// Session returns the session Authentication loaded, or nil.
func Session(c *gin.Context) *sessions.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*sessions.Session)
	return sess
}

func tokenFrom(c *gin.Context) string {
	if t := c.Request.Header.Get(TokenHeader); t != "" {
		return t
	}
	if auth := c.Request.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if t, err := c.Cookie(TokenCookie); err == nil && t != "" {
		return t
	}
	// browsers cannot set headers on a websocket handshake
	return c.Query("token")
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: code, Message: message})
}
