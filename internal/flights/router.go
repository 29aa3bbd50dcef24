package flights

import (
	"time"

	"skybook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// SetupFlightRoutes registers the public flight search endpoints. Responses
// are served through the read cache when Redis is reachable; on any cache
// failure the request falls through to the database.
func SetupFlightRoutes(rg *gin.RouterGroup, controller *Controller, cacheService cache.Service, prefix string, ttl time.Duration) {
	flightRoutes := rg.Group("/flights")
	flightRoutes.Use(cache.ReadCache(cacheService, prefix, ttl))
	{
		flightRoutes.GET("", controller.ListFlights)
		flightRoutes.GET("/:id", controller.GetFlight)
	}
}
