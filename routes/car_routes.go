package routes

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/handlers"
	"gorent/internal/middleware"
)

// SetupCarRoutes sets up the public catalog and the owner's fleet management
func SetupCarRoutes(r *gin.RouterGroup, carHandler *handlers.CarHandler, ownerHandler *handlers.OwnerHandler, jwtSecret string) {
	cars := r.Group("/cars")
	{
		cars.GET("", carHandler.ListCars)
		cars.GET("/:id", carHandler.GetCar)
	}

	owner := r.Group("/owner")
	owner.Use(middleware.AuthRequired(jwtSecret), middleware.OwnerRequired())
	{
		owner.POST("/cars", ownerHandler.CreateCar)
		owner.GET("/cars", ownerHandler.GetOwnerCars)
		owner.POST("/cars/:id/toggle", ownerHandler.ToggleAvailability)
		owner.DELETE("/cars/:id", ownerHandler.DeleteCar)
		owner.GET("/dashboard", ownerHandler.GetDashboard)
	}
}
