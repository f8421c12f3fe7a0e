// File: handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Appointment endpoints
	GetSlotsHandler      gin.HandlerFunc
	GetSlotHandler       gin.HandlerFunc
	BookSlotHandler      gin.HandlerFunc
	CancelBookingHandler gin.HandlerFunc
	GetBookedHandler     gin.HandlerFunc
	GetWeekHandler       gin.HandlerFunc
	GetOfficeInfoHandler gin.HandlerFunc

	// Assistant endpoints
	AssistantQueryHandler gin.HandlerFunc
	AssistantVoiceHandler gin.HandlerFunc
}

// NewHandlerBundle wires handler methods into a bundle.
func NewHandlerBundle(appointments *AppointmentHandler, assistantHandler *AssistantHandler) *HandlerBundle {
	return &HandlerBundle{
		GetSlotsHandler:      appointments.GetSlots,
		GetSlotHandler:       appointments.GetSlot,
		BookSlotHandler:      appointments.BookSlot,
		CancelBookingHandler: appointments.CancelBooking,
		GetBookedHandler:     appointments.GetBooked,
		GetWeekHandler:       appointments.GetWeek,
		GetOfficeInfoHandler: appointments.GetOfficeInfo,

		AssistantQueryHandler: assistantHandler.Query,
		AssistantVoiceHandler: assistantHandler.Voice,
	}
}
