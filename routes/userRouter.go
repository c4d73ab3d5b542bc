package routes

import (
	controller "event-portal/controllers"
	"event-portal/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine, env *controller.Env) {
	incomingRoutes.POST("/auth/login", controller.Login(env))
	incomingRoutes.POST("/auth/register", controller.Register(env))
	incomingRoutes.POST("/auth/verify-2fa", middleware.PendingAuthentication(env.Sessions, env.SecretKey, env), controller.VerifyTwoFactor(env))
}

// SessionRoutes need a completed login.
func SessionRoutes(incomingRoutes gin.IRoutes, env *controller.Env) {
	incomingRoutes.GET("/auth/me", controller.Me(env))
	incomingRoutes.POST("/auth/logout", controller.Logout(env))
	incomingRoutes.POST("/auth/2fa/setup", controller.SetupTwoFactor(env))
	incomingRoutes.POST("/auth/2fa/verify", controller.ConfirmTwoFactor(env))
	incomingRoutes.GET("/dashboard", controller.GetDashboard(env))
	incomingRoutes.GET("/ws", env.Hub.HandleWebSocket())
}
