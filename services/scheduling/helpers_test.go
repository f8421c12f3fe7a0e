package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"sapdoc/config"
	"sapdoc/database"
	appointmentRepo "sapdoc/database/repository/appointment"
	"sapdoc/models"
)

// monday0800 is Monday 3 June 2024, 08:00 UTC.
var monday0800 = time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return &d
}

func newSQLiteRepo(t *testing.T) appointmentRepo.AppointmentRepository {
	t.Helper()
	db, err := database.OpenGorm(config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = database.CloseGorm(db) })

	repo := appointmentRepo.NewGormAppointmentRepo(db)
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return repo
}

func newTestService(t *testing.T, now time.Time) *DefaultSchedulingService {
	t.Helper()
	return NewSchedulingService(newSQLiteRepo(t), Options{
		MaxRangeDays: 62,
		Now:          fixedClock(now),
	})
}

// stubRepo fails every call with err and counts how often it was reached.
type stubRepo struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *stubRepo) hit() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.err
}

func (r *stubRepo) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *stubRepo) Create(context.Context, *models.Appointment) error { return r.hit() }
func (r *stubRepo) GetBySlotID(context.Context, string) (*models.Appointment, error) {
	return nil, r.hit()
}
func (r *stubRepo) DeleteBySlotID(context.Context, string) (*models.Appointment, error) {
	return nil, r.hit()
}
func (r *stubRepo) ListByDateRange(context.Context, string, string) ([]models.Appointment, error) {
	return nil, r.hit()
}
func (r *stubRepo) ListAll(context.Context) ([]models.Appointment, error) { return nil, r.hit() }
func (r *stubRepo) Count(context.Context) (int64, error) { return 0, r.hit() }
func (r *stubRepo) EnsureIndexes(context.Context) error { return r.hit() }
func (r *stubRepo) Ping(context.Context) error { return r.hit() }

type recordingReminders struct {
	mu        sync.Mutex
	scheduled []models.TimeSlot
	cancelled []string
	err       error
}

func (r *recordingReminders) ScheduleReminder(_ context.Context, slot models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, slot)
	return r.err
}

func (r *recordingReminders) CancelReminder(_ context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, slotID)
	return r.err
}
