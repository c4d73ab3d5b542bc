package routes

import (
	controller "event-portal/controllers"
	"event-portal/middleware"
	"event-portal/models"

	"github.com/gin-gonic/gin"
)

func EventRoutes(incomingRoutes gin.IRoutes, env *controller.Env) {
	manage := middleware.RequireRoles(models.RoleAdmin, models.RoleEventTeam)

	incomingRoutes.GET("/events", controller.GetEvents(env))
	incomingRoutes.GET("/events/:event_id", controller.GetEvent(env))
	incomingRoutes.POST("/events", manage, controller.CreateEvent(env))
	incomingRoutes.PUT("/events/:event_id", manage, controller.UpdateEvent(env))
	incomingRoutes.DELETE("/events/:event_id", manage, controller.DeleteEvent(env))
}
