package controllers

import (
	"net/http"

	"event-portal/dashboard"
	"event-portal/middleware"

	"github.com/gin-gonic/gin"
)

// GetDashboard renders the variant chosen when the session signed in.
func GetDashboard(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		sess := middleware.Session(c)
		view, ok := dashboard.FromKind(sess.View)
		if !ok {
			view = dashboard.ViewFor(sess.Role)
		}

		payload, err := env.Dashboards.Load(ctx, view, sess.AccessToken, sess.User)
		if err != nil {
			respondError(c, env.Log, "dashboard_failed", err)
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}
