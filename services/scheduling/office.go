package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "sapdoc/database/repository/appointment"
	"sapdoc/models"
)

// SlotDuration is the length of one appointment.
const SlotDuration = 30 * time.Minute

// IsOfficeDay reports whether the clinic is open on date.
func IsOfficeDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func (s *DefaultSchedulingService) OfficeInfo() models.OfficeInfo {
	labels := s.Grid.Labels()
	last, _ := time.Parse(labelLayout, labels[len(labels)-1])
	return models.OfficeInfo{
		Hours: models.OfficeHours{
			Start: labels[0],
			End:   last.Add(SlotDuration).Format(labelLayout),
		},
		Days:               []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		TimeSlots:          labels,
		Timezone:           s.Location.String(),
		AdvanceBooking:     "Appointments can be booked up to 4 weeks in advance",
		CancellationPolicy: "Please cancel at least 24 hours before your appointment",
	}
}

var sampleAppointments = []struct {
	label, name, description string
}{
	{"10:00", "John Doe", "Regular checkup"},
	{"14:30", "Jane Smith", "Follow-up appointment"},
}

// SeedSampleData books two demo appointments for today when the store is empty.
func (s *DefaultSchedulingService) SeedSampleData(ctx context.Context) error {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return storeError("count bookings", err)
	}
	if n > 0 {
		return nil
	}

	today := s.Generator.Today()
	now := s.now().UTC()
	for _, sample := range sampleAppointments {
		if !s.Grid.Contains(sample.label) {
			continue
		}
		appt := &models.Appointment{
			ID:          uuid.NewString(),
			SlotID:      FormatSlotID(today, sample.label),
			Time:        sample.label,
			Date:        today.Format(DateLayout),
			PatientName: sample.name,
			Description: sample.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Repo.Create(ctx, appt); err != nil && !errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return storeError("seed booking", err)
		}
	}
	s.Logger.Info("Seeded sample appointments", zap.String("date", today.Format(DateLayout)))
	return nil
}
