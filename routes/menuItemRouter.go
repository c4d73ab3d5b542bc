package routes

import (
	controller "event-portal/controllers"
	"event-portal/middleware"
	"event-portal/models"

	"github.com/gin-gonic/gin"
)

func MenuItemRoutes(incomingRoutes gin.IRoutes, env *controller.Env) {
	manage := middleware.RequireRoles(models.RoleFoodStall, models.RoleGameStall, models.RoleAdmin)

	incomingRoutes.GET("/stalls/:stall_id/menu-items", controller.GetMenuItems(env))
	incomingRoutes.GET("/stalls/:stall_id/menu-items/:item_id", controller.GetMenuItem(env))
	incomingRoutes.POST("/stalls/:stall_id/menu-items", manage, controller.CreateMenuItem(env))
	incomingRoutes.PUT("/stalls/:stall_id/menu-items/:item_id", manage, controller.UpdateMenuItem(env))
	incomingRoutes.DELETE("/stalls/:stall_id/menu-items/:item_id", manage, controller.DeleteMenuItem(env))
}
