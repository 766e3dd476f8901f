package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"labbook/handlers"
	"labbook/middleware"
)

// HandlerBundle groups the handlers the route tree is built from.
type HandlerBundle struct {
	Booking *handlers.BookingHandler
	Catalog *handlers.CatalogHandler
	Patient *handlers.PatientHandler
	Order   *handlers.OrderHandler
}

// RegisterCatalogRoutes registers the read-only catalogue endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/services", hb.Catalog.ListServices)
		api.GET("/locations", hb.Catalog.ListLocations)
	}
}

// RegisterPatientRoutes registers the account's patient roster endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/patients")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.Patient.ListPatients)
		api.POST("", hb.Patient.CreatePatient)
	}
}

// RegisterOrderRoutes registers order lookup endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/orders")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.Order.ListOrders)
		api.GET("/:orderNumber", hb.Order.GetOrder)
	}
}

// RegisterHealthRoute registers the health endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes wires global middleware and every route group.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
}
