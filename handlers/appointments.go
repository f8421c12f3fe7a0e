package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sapdoc/models"
	"sapdoc/services/scheduling"
)

// AppointmentHandler serves the slot grid and booking transitions.
type AppointmentHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

func NewAppointmentHandler(svc scheduling.SchedulingService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Logger: logger}
}

// optionalDate reads a YYYY-MM-DD query parameter; absent means nil.
func optionalDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := scheduling.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetSlots handles GET /api/appointments/slots?startDate=&endDate=.
func (h *AppointmentHandler) GetSlots(c *gin.Context) {
	start, err := optionalDate(c, "startDate")
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := optionalDate(c, "endDate")
	if err != nil {
		respondError(c, err)
		return
	}

	days, err := h.Service.Schedule(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// GetWeek handles GET /api/appointments/week?date=.
func (h *AppointmentHandler) GetWeek(c *gin.Context) {
	d, err := optionalDate(c, "date")
	if err != nil {
		respondError(c, err)
		return
	}
	days, err := h.Service.Week(c.Request.Context(), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (h *AppointmentHandler) GetSlot(c *gin.Context) {
	slot, err := h.Service.Slot(c.Request.Context(), c.Param("slotId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// BookSlot handles POST /api/appointments/slots/:slotId/book.
func (h *AppointmentHandler) BookSlot(c *gin.Context) {
	// An unreadable body books with an empty name, so Book still rejects a
	// malformed slot id before the missing name.
	var req models.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Debug("Invalid booking request body", zap.Error(err))
		req = models.BookSlotRequest{}
	}

	slot, err := h.Service.Book(c.Request.Context(), c.Param("slotId"), req.PatientName, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SlotActionResponse{TimeSlot: *slot, Message: "Slot booked successfully"})
}

// CancelBooking handles DELETE /api/appointments/slots/:slotId/book.
func (h *AppointmentHandler) CancelBooking(c *gin.Context) {
	slot, err := h.Service.Cancel(c.Request.Context(), c.Param("slotId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SlotActionResponse{TimeSlot: *slot, Message: "Booking cancelled successfully"})
}

func (h *AppointmentHandler) GetBooked(c *gin.Context) {
	slots, err := h.Service.Booked(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *AppointmentHandler) GetOfficeInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.OfficeInfo())
}
