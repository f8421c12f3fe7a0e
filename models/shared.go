package models

// ReminderPayload is the body of an appointment reminder task.
type ReminderPayload struct {
	SlotID      string `json:"slotId"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	FireDate    string `json:"fireDate"`
}
