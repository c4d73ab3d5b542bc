package routes

import (
	controller "event-portal/controllers"
	"event-portal/middleware"
	"event-portal/models"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes gin.IRoutes, env *controller.Env) {
	operate := middleware.RequireRoles(models.RoleFoodStall, models.RoleGameStall, models.RoleAdmin)

	incomingRoutes.GET("/orders", controller.GetOrders(env))
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder(env))
	incomingRoutes.POST("/orders/:order_id/advance", operate, controller.AdvanceOrder(env))
	incomingRoutes.DELETE("/orders/:order_id", controller.CancelOrder(env))
}
