package scheduling

import (
	"fmt"
	"time"

	"sapdoc/models"
)

// DefaultRangeDays is the span covered when no end date is given.
const DefaultRangeDays = 7

// Generator maps a date range to the skeleton of addressable slots.
type Generator struct {
	grid    *Grid
	loc     *time.Location
	maxDays int
	now     func() time.Time
}

// NewGenerator builds a Generator. now is only consulted for the default start date.
func NewGenerator(grid *Grid, loc *time.Location, maxDays int, now func() time.Time) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{grid: grid, loc: loc, maxDays: maxDays, now: now}
}

// Today is the current calendar date in the clinic's time zone.
func (g *Generator) Today() time.Time {
	return civilDate(g.now().In(g.loc))
}

// Resolve applies defaults to an optional range and validates it.
func (g *Generator) Resolve(start, end *time.Time) (time.Time, time.Time, error) {
	from := g.Today()
	if start != nil {
		from = civilDate(*start)
	}
	to := from.AddDate(0, 0, DefaultRangeDays-1)
	if end != nil {
		to = civilDate(*end)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, &InvalidRangeError{
			Message: fmt.Sprintf("end date %s is before start date %s", to.Format(DateLayout), from.Format(DateLayout)),
		}
	}
	if days := daysBetween(from, to) + 1; g.maxDays > 0 && days > g.maxDays {
		return time.Time{}, time.Time{}, &InvalidRangeError{
			Message: fmt.Sprintf("range of %d days exceeds the maximum of %d", days, g.maxDays),
		}
	}
	return from, to, nil
}

// Generate returns one DaySchedule per day of the range, every slot unbooked.
func (g *Generator) Generate(start, end *time.Time) ([]models.DaySchedule, error) {
	from, to, err := g.Resolve(start, end)
	if err != nil {
		return nil, err
	}
	return g.days(from, to), nil
}

func (g *Generator) days(from, to time.Time) []models.DaySchedule {
	n := daysBetween(from, to) + 1
	out := make([]models.DaySchedule, 0, n)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		slots := make([]models.TimeSlot, 0, len(g.grid.labels))
		for _, label := range g.grid.labels {
			slots = append(slots, models.TimeSlot{
				ID:   FormatSlotID(d, label),
				Time: label,
				Date: date,
			})
		}
		out = append(out, models.DaySchedule{
			Date:    date,
			DayName: d.Weekday().String(),
			Slots:   slots,
		})
	}
	return out
}

// WeekBounds returns the Monday and Sunday of the week containing date.
func WeekBounds(date time.Time) (time.Time, time.Time) {
	d := civilDate(date)
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// daysBetween counts whole days from a to b. Both are midnight UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
