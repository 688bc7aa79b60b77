package routes

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/handlers"
	"gorent/internal/middleware"
)

// SetupUserRoutes sets up profile and newsletter routes
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler, newsletterHandler *handlers.NewsletterHandler, jwtSecret string) {
	users := r.Group("/users")
	users.Use(middleware.AuthRequired(jwtSecret))
	{
		users.GET("/me", userHandler.GetMe)
	}

	r.POST("/newsletter", newsletterHandler.Subscribe)
}
