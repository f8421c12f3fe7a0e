package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "sapdoc/database/repository/appointment"
	"sapdoc/models"
)

// Schedule generates the grid and overlays bookings from a single range query.
func (s *DefaultSchedulingService) Schedule(ctx context.Context, start, end *time.Time) ([]models.DaySchedule, error) {
	from, to, err := s.Generator.Resolve(start, end)
	if err != nil {
		return nil, err
	}
	days := s.Generator.days(from, to)

	appts, err := s.Repo.ListByDateRange(ctx, from.Format(DateLayout), to.Format(DateLayout))
	if err != nil {
		return nil, storeError("list bookings", err)
	}
	if len(appts) == 0 {
		return days, nil
	}

	booked := make(map[string]models.Appointment, len(appts))
	for _, a := range appts {
		booked[a.SlotID] = a
	}
	for i := range days {
		for j, slot := range days[i].Slots {
			if a, ok := booked[slot.ID]; ok {
				days[i].Slots[j] = a.View()
			}
		}
	}
	return days, nil
}

func (s *DefaultSchedulingService) Week(ctx context.Context, date *time.Time) ([]models.DaySchedule, error) {
	d := s.Generator.Today()
	if date != nil {
		d = *date
	}
	monday, sunday := WeekBounds(d)
	return s.Schedule(ctx, &monday, &sunday)
}

// Slot returns the current view of one slot; a slot without a booking is available.
func (s *DefaultSchedulingService) Slot(ctx context.Context, slotID string) (*models.TimeSlot, error) {
	date, label, err := s.Grid.ParseSlotID(slotID)
	if err != nil {
		return nil, err
	}
	id := FormatSlotID(date, label)

	appt, err := s.Repo.GetBySlotID(ctx, id)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		view := availableView(date, label)
		return &view, nil
	}
	if err != nil {
		return nil, storeError("get booking", err)
	}
	view := appt.View()
	return &view, nil
}

// Booked lists every booking ordered by date and time.
func (s *DefaultSchedulingService) Booked(ctx context.Context) ([]models.TimeSlot, error) {
	appts, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, storeError("list bookings", err)
	}
	out := make([]models.TimeSlot, 0, len(appts))
	for _, a := range appts {
		out = append(out, a.View())
	}
	return out, nil
}

// NextAvailable finds up to limit open weekday slots that have not started yet,
// looking horizonDays ahead from today.
func (s *DefaultSchedulingService) NextAvailable(ctx context.Context, horizonDays, limit int) ([]models.TimeSlot, error) {
	if horizonDays < 1 || limit < 1 {
		return nil, nil
	}
	now := s.now().In(s.Location)
	from := civilDate(now)
	to := from.AddDate(0, 0, horizonDays-1)

	appts, err := s.Repo.ListByDateRange(ctx, from.Format(DateLayout), to.Format(DateLayout))
	if err != nil {
		return nil, storeError("list bookings", err)
	}
	booked := make(map[string]struct{}, len(appts))
	for _, a := range appts {
		booked[a.SlotID] = struct{}{}
	}

	var out []models.TimeSlot
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !IsOfficeDay(d) {
			continue
		}
		for _, label := range s.Grid.labels {
			if !slotStart(d, label, s.Location).After(now) {
				continue
			}
			id := FormatSlotID(d, label)
			if _, taken := booked[id]; taken {
				continue
			}
			out = append(out, availableView(d, label))
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func availableView(date time.Time, label string) models.TimeSlot {
	return models.TimeSlot{
		ID:   FormatSlotID(date, label),
		Time: label,
		Date: date.Format(DateLayout),
	}
}

func storeError(op string, err error) error {
	if errors.Is(err, appointmentRepo.ErrUnavailable) {
		return &StoreUnavailableError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
