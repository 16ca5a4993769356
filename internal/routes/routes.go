// Package routes defines the HTTP surface of the task API.
package routes

import (
	"taskhub/backend/internal/config"
	"taskhub/backend/internal/handlers"
	"taskhub/backend/internal/middleware"
	"taskhub/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup wires middleware and routes. Login and registration are the only
// unauthenticated endpoints; everything else sits behind the bearer check.
func Setup(router *gin.Engine, cfg *config.Config, authHandler *handlers.AuthHandler, taskHandler *handlers.TaskHandler, authService services.AuthService) {
	router.Use(middleware.RecoveryWithLog())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	}

	router.POST("/login", authHandler.Login)
	// Upstream exposed /registration; /register is the documented alias.
	router.POST("/register", authHandler.Register)
	router.POST("/registration", authHandler.Register)

	authenticated := router.Group("")
	authenticated.Use(middleware.Authenticate(authService))
	{
		authenticated.POST("/logout", authHandler.Logout)
		authenticated.GET("/user", authHandler.Me)

		authenticated.GET("/tasks", taskHandler.Index)
		authenticated.POST("/tasks", taskHandler.Store)
		authenticated.GET("/tasks/search/:fragment", taskHandler.Search)
		authenticated.GET("/tasks/:id", taskHandler.Show)
		authenticated.PUT("/tasks/:id", taskHandler.Update)
		authenticated.DELETE("/tasks/:id", taskHandler.Destroy)
	}
}
