package bookings

import (
	"skybook/internal/shared/config"
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers the booking endpoints. All of them
// require an authenticated traveller.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookingRoutes := rg.Group("/bookings")
	bookingRoutes.Use(middleware.JWTAuthWithConfig(cfg))
	bookingRoutes.Use(middleware.RequireRoles("USER", "ADMIN"))
	{
		bookingRoutes.POST("", controller.SubmitBooking)
		bookingRoutes.GET("", controller.ListBookings)
		bookingRoutes.GET("/:id", controller.GetBooking)
		bookingRoutes.DELETE("/:id", controller.CancelBooking)
	}
}
