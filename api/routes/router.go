// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"skybook/internal/auth"
	"skybook/internal/bookings"
	"skybook/internal/checkout"
	"skybook/internal/flights"
	"skybook/internal/notifications"
	"skybook/internal/shared/config"
	"skybook/internal/shared/constants"
	"skybook/internal/shared/database"
	"skybook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// Services shared across feature routers, populated in wiring order.
	flightService   flights.Service
	checkoutService checkout.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Flight routes must come before checkout routes: the checkout
		// service resolves fares and seat maps through the flight service.
		r.setupFlightRoutes(api)
		r.setupCheckoutRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "skybook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "skybook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupFlightRoutes configures the public flight search routes behind
// the read cache.
func (r *Router) setupFlightRoutes(rg *gin.RouterGroup) {
	flightRepo := flights.NewRepository(r.db.GetPostgreSQL())
	r.flightService = flights.NewService(flightRepo)
	flightController := flights.NewController(r.flightService)

	cacheService := cache.NewService(r.db.GetRedis())
	flights.SetupFlightRoutes(rg, flightController, cacheService,
		constants.CACHE_KEY_FLIGHTS_READ, r.config.Redis.ReadCacheTTL)
}

// setupCheckoutRoutes configures the checkout flow routes. Sessions
// live in Redis when it is reachable and fall back to process memory
// otherwise.
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup) {
	var store checkout.Store
	if r.db.GetRedis() != nil {
		store = checkout.NewRedisStore(r.db.GetRedis(), r.config.Redis.SessionTTL)
	} else {
		store = checkout.NewMemoryStore()
	}

	flow := checkout.NewFlowController(r.config.Checkout.ProtectionFee)
	r.checkoutService = checkout.NewService(store, r.flightService, flow)
	checkoutController := checkout.NewController(r.checkoutService)

	checkout.SetupCheckoutRoutes(rg, checkoutController)
}

// setupBookingRoutes configures booking management routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	gateway := bookings.NewSimulatedGateway()
	bookingService := bookings.NewService(bookingRepo, r.checkoutService, gateway, r.producer, r.config.Checkout.ProtectionFee)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}
