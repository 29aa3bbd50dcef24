package checkout

import (
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes configures all checkout-session routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, controller *Controller) {
	sessions := rg.Group("/checkout")
	sessions.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		sessions.POST("", controller.StartSession)             // POST   /api/v1/checkout
		sessions.GET("/:id", controller.GetSession)            // GET    /api/v1/checkout/:id
		sessions.DELETE("/:id", controller.Cancel)             // DELETE /api/v1/checkout/:id
		sessions.POST("/:id/flights", controller.SelectFlight) // POST /api/v1/checkout/:id/flights
		sessions.POST("/:id/jump", controller.Jump)            // POST   /api/v1/checkout/:id/jump

		sessions.GET("/:id/seatmap", controller.LoadSeatMap)         // GET  /api/v1/checkout/:id/seatmap?leg=outbound
		sessions.POST("/:id/seats/toggle", controller.ToggleSeat)    // POST /api/v1/checkout/:id/seats/toggle
		sessions.POST("/:id/seats/confirm", controller.ConfirmSeats) // POST /api/v1/checkout/:id/seats/confirm
	}
}
