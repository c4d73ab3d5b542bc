package routes

import (
	"net/http"
	"time"

	controller "event-portal/controllers"
	"event-portal/middleware"
	"event-portal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router wires every portal route. Routes in the authed group require a
// completed login; unmatched paths still fall through to NoRoute.
func Router(env *controller.Env, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(env.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "NOT_FOUND", Message: "Page not found"})
	})

	router.GET("/health", controller.Health())
	UserRoutes(router, env)

	authed := router.Group("/", middleware.Authentication(env.Sessions, env.SecretKey, env))
	SessionRoutes(authed, env)
	EventRoutes(authed, env)
	MenuItemRoutes(authed, env)
	CartRoutes(authed, env)
	OrderRoutes(authed, env)

	return router
}
