package routes

import (
	"github.com/gin-gonic/gin"

	"sapdoc/handlers"
)

// RegisterAppointmentRoutes registers the slot grid and booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.GET("/slots", hb.GetSlotsHandler)
		api.GET("/slots/:slotId", hb.GetSlotHandler)
		api.POST("/slots/:slotId/book", hb.BookSlotHandler)
		api.DELETE("/slots/:slotId/book", hb.CancelBookingHandler)
		api.GET("/booked", hb.GetBookedHandler)
		api.GET("/week", hb.GetWeekHandler)
		api.GET("/office", hb.GetOfficeInfoHandler)
	}
}
