package routes

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/handlers"
	"gorent/internal/middleware"
)

// SetupBookingRoutes sets up routes for booking functionality
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	bookings := r.Group("/bookings")

	// Availability is browsable without an account
	bookings.POST("/check-availability", bookingHandler.CheckAvailability)

	authed := bookings.Group("")
	authed.Use(middleware.AuthRequired(jwtSecret))
	{
		authed.POST("/create-details", bookingHandler.CreateBooking)
		authed.GET("/user", bookingHandler.GetUserBookings)
		authed.GET("/:id", bookingHandler.GetBooking)
		authed.POST("/:id/cancel", bookingHandler.CancelBooking)
	}

	owner := bookings.Group("")
	owner.Use(middleware.AuthRequired(jwtSecret), middleware.OwnerRequired())
	{
		owner.GET("/owner", bookingHandler.GetOwnerBookings)
		owner.POST("/change-status/:id", bookingHandler.ChangeStatus)
	}
}
