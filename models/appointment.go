package models

import "time"

// Appointment is a persisted booking of one slot. Absence of a row means the slot is available.
type Appointment struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	SlotID      string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_appointments_slot_id" bson:"slotId" json:"slotId"`
	Time        string    `gorm:"type:varchar(5);not null" bson:"time" json:"time"`
	Date        string    `gorm:"type:varchar(10);not null;index:idx_appointments_date" bson:"date" json:"date"`
	PatientName string    `gorm:"type:varchar(255);not null" bson:"patientName" json:"patientName"`
	Description string    `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// View renders the appointment as a booked slot.
func (a Appointment) View() TimeSlot {
	return TimeSlot{
		ID:          a.SlotID,
		Time:        a.Time,
		Date:        a.Date,
		IsBooked:    true,
		PatientName: a.PatientName,
		Description: a.Description,
	}
}

// BookSlotRequest is the body of POST /api/appointments/slots/:slotId/book.
// PatientName is validated by the booking service after the slot id.
type BookSlotRequest struct {
	PatientName string `json:"patientName"`
	Description string `json:"description"`
}

// SlotActionResponse is a slot view plus a human readable confirmation.
type SlotActionResponse struct {
	TimeSlot
	Message string `json:"message"`
}
