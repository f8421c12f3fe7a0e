package scheduling

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "sapdoc/database/repository/appointment"
	"sapdoc/metrics"
	"sapdoc/models"
)

// Book moves a slot from available to booked. The store's uniqueness guard
// decides between racing requests for the same slot.
func (s *DefaultSchedulingService) Book(ctx context.Context, slotID, patientName, description string) (*models.TimeSlot, error) {
	date, label, err := s.Grid.ParseSlotID(slotID)
	if err != nil {
		metrics.SlotTransitions.WithLabelValues("book", "invalid").Inc()
		return nil, err
	}
	name := strings.TrimSpace(patientName)
	if name == "" {
		metrics.SlotTransitions.WithLabelValues("book", "invalid").Inc()
		return nil, &ValidationError{Field: "patientName", Message: "Patient name is required"}
	}

	now := s.now().UTC()
	appt := &models.Appointment{
		ID:          uuid.NewString(),
		SlotID:      FormatSlotID(date, label),
		Time:        label,
		Date:        date.Format(DateLayout),
		PatientName: name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			metrics.SlotTransitions.WithLabelValues("book", "conflict").Inc()
			return nil, &ConflictError{SlotID: appt.SlotID, Reason: "already booked"}
		}
		metrics.SlotTransitions.WithLabelValues("book", "error").Inc()
		return nil, storeError("book slot", err)
	}
	metrics.SlotTransitions.WithLabelValues("book", "ok").Inc()

	view := appt.View()
	s.Logger.Info("Slot booked", zap.String("slotId", view.ID), zap.String("bookingId", appt.ID))

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, view); err != nil {
			s.Logger.Warn("Failed to schedule reminder", zap.String("slotId", view.ID), zap.Error(err))
		}
	}
	return &view, nil
}

// Cancel moves a booked slot back to available. Cancelling an available slot
// is a NotFoundError and changes nothing.
func (s *DefaultSchedulingService) Cancel(ctx context.Context, slotID string) (*models.TimeSlot, error) {
	date, label, err := s.Grid.ParseSlotID(slotID)
	if err != nil {
		metrics.SlotTransitions.WithLabelValues("cancel", "invalid").Inc()
		return nil, err
	}
	id := FormatSlotID(date, label)

	appt, err := s.Repo.DeleteBySlotID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			metrics.SlotTransitions.WithLabelValues("cancel", "not_found").Inc()
			return nil, &NotFoundError{SlotID: id}
		}
		metrics.SlotTransitions.WithLabelValues("cancel", "error").Inc()
		return nil, storeError("cancel booking", err)
	}
	metrics.SlotTransitions.WithLabelValues("cancel", "ok").Inc()
	s.Logger.Info("Booking cancelled", zap.String("slotId", id), zap.String("bookingId", appt.ID))

	if s.Reminders != nil {
		if err := s.Reminders.CancelReminder(ctx, id); err != nil {
			s.Logger.Warn("Failed to cancel reminder", zap.String("slotId", id), zap.Error(err))
		}
	}

	view := availableView(date, label)
	return &view, nil
}
