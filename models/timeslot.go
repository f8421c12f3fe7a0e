package models

// TimeSlot is the read view of one addressable slot. It is computed, never stored.
// PatientName and Description are empty whenever IsBooked is false.
type TimeSlot struct {
	ID          string `json:"id"`
	Time        string `json:"time"`
	Date        string `json:"date"`
	IsBooked    bool   `json:"isBooked"`
	PatientName string `json:"patientName,omitempty"`
	Description string `json:"description,omitempty"`
}

// DaySchedule groups a calendar day's slots in canonical label order.
type DaySchedule struct {
	Date    string     `json:"date"`
	DayName string     `json:"dayName"`
	Slots   []TimeSlot `json:"slots"`
}

// OfficeHours is the opening window of the clinic.
type OfficeHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// OfficeInfo describes when and how appointments can be made.
type OfficeInfo struct {
	Hours              OfficeHours `json:"hours"`
	Days               []string    `json:"days"`
	TimeSlots          []string    `json:"timeSlots"`
	Timezone           string      `json:"timezone"`
	AdvanceBooking     string      `json:"advanceBooking"`
	CancellationPolicy string      `json:"cancellationPolicy"`
}
