package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	appointmentRepo "sapdoc/database/repository/appointment"
	"sapdoc/models"
)

// SchedulingService exposes the slot grid and the booking state machine.
type SchedulingService interface {
	// Schedule returns the merged grid for [start, end]; nil bounds take defaults.
	Schedule(ctx context.Context, start, end *time.Time) ([]models.DaySchedule, error)
	// Week returns the Monday-aligned week containing date (today when nil).
	Week(ctx context.Context, date *time.Time) ([]models.DaySchedule, error)
	Slot(ctx context.Context, slotID string) (*models.TimeSlot, error)
	Booked(ctx context.Context) ([]models.TimeSlot, error)
	NextAvailable(ctx context.Context, horizonDays, limit int) ([]models.TimeSlot, error)
	Book(ctx context.Context, slotID, patientName, description string) (*models.TimeSlot, error)
	Cancel(ctx context.Context, slotID string) (*models.TimeSlot, error)
	OfficeInfo() models.OfficeInfo
	SeedSampleData(ctx context.Context) error
}

// ReminderScheduler is notified after successful transitions. Its failures never
// change the outcome of a Book or Cancel.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, slot models.TimeSlot) error
	CancelReminder(ctx context.Context, slotID string) error
}

// Options configures a DefaultSchedulingService.
type Options struct {
	Grid         *Grid
	Location     *time.Location
	MaxRangeDays int
	Now          func() time.Time
	Reminders    ReminderScheduler
	Logger       *zap.Logger
}

// DefaultSchedulingService implements SchedulingService on an AppointmentRepository.
type DefaultSchedulingService struct {
	Repo      appointmentRepo.AppointmentRepository
	Generator *Generator
	Grid      *Grid
	Location  *time.Location
	Reminders ReminderScheduler
	Logger    *zap.Logger
	now       func() time.Time
}

func NewSchedulingService(repo appointmentRepo.AppointmentRepository, opts Options) *DefaultSchedulingService {
	if opts.Grid == nil {
		opts.Grid = DefaultGrid()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &DefaultSchedulingService{
		Repo:      repo,
		Generator: NewGenerator(opts.Grid, opts.Location, opts.MaxRangeDays, opts.Now),
		Grid:      opts.Grid,
		Location:  opts.Location,
		Reminders: opts.Reminders,
		Logger:    opts.Logger,
		now:       opts.Now,
	}
}
