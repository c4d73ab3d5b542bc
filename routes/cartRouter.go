package routes

import (
	controller "event-portal/controllers"

	"github.com/gin-gonic/gin"
)

func CartRoutes(incomingRoutes gin.IRoutes, env *controller.Env) {
	incomingRoutes.GET("/stalls/:stall_id/cart", controller.GetCart(env))
	incomingRoutes.DELETE("/stalls/:stall_id/cart", controller.ClearCart(env))
	incomingRoutes.POST("/stalls/:stall_id/cart/items", controller.AddCartItem(env))
	incomingRoutes.PUT("/stalls/:stall_id/cart/items/:item_id", controller.SetCartItemQuantity(env))
	incomingRoutes.POST("/stalls/:stall_id/cart/checkout", controller.Checkout(env))
}
