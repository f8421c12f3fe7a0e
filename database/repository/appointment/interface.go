// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"

	"sapdoc/models"
)

// AppointmentRepository is the authoritative record of booked slots.
// Every implementation enforces uniqueness of SlotID in the store itself.
type AppointmentRepository interface {
	// Create inserts a booking. A second booking for the same slot fails with ErrSlotTaken.
	Create(ctx context.Context, appt *models.Appointment) error
	GetBySlotID(ctx context.Context, slotID string) (*models.Appointment, error)
	// DeleteBySlotID removes and returns the booking, or ErrNotFound when none exists.
	DeleteBySlotID(ctx context.Context, slotID string) (*models.Appointment, error)
	// ListByDateRange returns bookings with from <= date <= to ordered by date, time.
	ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
}
