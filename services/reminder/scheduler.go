package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"sapdoc/metrics"
	"sapdoc/models"
)

// AsynqScheduler enqueues a reminder per booking and removes it on cancellation.
type AsynqScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	lead      time.Duration
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewAsynqScheduler(redisOpt asynq.RedisClientOpt, lead time.Duration, loc *time.Location, logger *zap.Logger) *AsynqScheduler {
	return &AsynqScheduler{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
		lead:      lead,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

// FireTime is when the reminder for slot should be delivered.
func FireTime(slot models.TimeSlot, lead time.Duration, loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", slot.Date+" "+slot.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot start: %w", err)
	}
	return start.Add(-lead), nil
}

// BuildPayload renders the reminder text for a booked slot.
func BuildPayload(slot models.TimeSlot, fireAt time.Time) models.ReminderPayload {
	return models.ReminderPayload{
		SlotID:      slot.ID,
		PatientName: slot.PatientName,
		Date:        slot.Date,
		Time:        slot.Time,
		Title:       "Appointment reminder",
		Body:        fmt.Sprintf("Hi %s, this is a reminder of your appointment on %s at %s.", slot.PatientName, slot.Date, slot.Time),
		FireDate:    fireAt.Format(time.RFC3339),
	}
}

func (s *AsynqScheduler) ScheduleReminder(ctx context.Context, slot models.TimeSlot) error {
	fireAt, err := FireTime(slot, s.lead, s.loc)
	if err != nil {
		return err
	}
	if !fireAt.After(s.now()) {
		s.logger.Debug("Reminder time already passed, skipping", zap.String("slotId", slot.ID))
		return nil
	}

	task, opts, err := NewReminderTask(BuildPayload(slot, fireAt), fireAt)
	if err != nil {
		return err
	}

	_, err = s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// A stale reminder from an earlier booking of the same slot.
		if derr := s.inspector.DeleteTask(Queue, TaskID(slot.ID)); derr != nil {
			return fmt.Errorf("replace stale reminder: %w", derr)
		}
		_, err = s.client.EnqueueContext(ctx, task, opts...)
	}
	if err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}

	metrics.RemindersTotal.WithLabelValues("scheduled").Inc()
	s.logger.Info("Reminder scheduled", zap.String("slotId", slot.ID), zap.Time("fireAt", fireAt))
	return nil
}

func (s *AsynqScheduler) CancelReminder(_ context.Context, slotID string) error {
	err := s.inspector.DeleteTask(Queue, TaskID(slotID))
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	metrics.RemindersTotal.WithLabelValues("cancelled").Inc()
	return nil
}

func (s *AsynqScheduler) Close() error {
	if err := s.inspector.Close(); err != nil {
		return err
	}
	return s.client.Close()
}
