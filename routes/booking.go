package routes

import (
	"github.com/gin-gonic/gin"

	"labbook/middleware"
)

// RegisterBookingRoutes registers all endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/booking")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("/session", hb.Booking.CreateSession)
		api.GET("/session/:sessionID", hb.Booking.GetSession)
		api.PUT("/session/:sessionID/services", hb.Booking.SelectServices)
		api.PUT("/session/:sessionID/patient", hb.Booking.SelectPatient)
		api.PUT("/session/:sessionID/location", hb.Booking.SelectLocation)
		api.PUT("/session/:sessionID/schedule", hb.Booking.SelectSchedule)
		api.GET("/session/:sessionID/availability", hb.Booking.Availability)
		api.POST("/session/:sessionID/back", hb.Booking.GoBack)
		api.POST("/session/:sessionID/confirm", hb.Booking.Confirm)
		api.DELETE("/session/:sessionID", hb.Booking.CancelSession)
	}
}
