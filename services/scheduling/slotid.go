package scheduling

import (
	"fmt"
	"time"

	"sapdoc/config"
)

// DateLayout is the calendar date part of a slot identifier.
const DateLayout = "2006-01-02"

const (
	labelLayout = "15:04"
	slotIDLen   = len(DateLayout) + 1 + len(labelLayout)
)

// Grid is the ordered set of canonical time labels every day is divided into.
type Grid struct {
	labels []string
	index  map[string]int
}

// NewGrid validates labels and builds a Grid from them.
func NewGrid(labels []string) (*Grid, error) {
	if err := config.ValidateSlotTimes(labels); err != nil {
		return nil, err
	}
	g := &Grid{
		labels: append([]string(nil), labels...),
		index:  make(map[string]int, len(labels)),
	}
	for i, l := range g.labels {
		g.index[l] = i
	}
	return g, nil
}

// DefaultGrid is the clinic's standard twelve-slot day.
func DefaultGrid() *Grid {
	g, err := NewGrid(config.DefaultSlotTimes)
	if err != nil {
		panic(err)
	}
	return g
}

// Labels returns a copy of the canonical labels in order.
func (g *Grid) Labels() []string {
	return append([]string(nil), g.labels...)
}

func (g *Grid) Contains(label string) bool {
	_, ok := g.index[label]
	return ok
}

// FormatSlotID renders the canonical identifier "YYYY-MM-DD-HH:MM".
func FormatSlotID(date time.Time, label string) string {
	return date.Format(DateLayout) + "-" + label
}

// ParseSlotID splits an identifier into its calendar date (midnight UTC) and label.
// The legacy "YYYY-MM-DD-HH-MM" form is accepted and normalized.
func (g *Grid) ParseSlotID(id string) (time.Time, string, error) {
	if len(id) != slotIDLen || id[len(DateLayout)] != '-' {
		return time.Time{}, "", &InvalidSlotIDError{SlotID: id, Reason: "expected YYYY-MM-DD-HH:MM"}
	}

	date, err := time.Parse(DateLayout, id[:len(DateLayout)])
	if err != nil {
		return time.Time{}, "", &InvalidSlotIDError{SlotID: id, Reason: "invalid calendar date"}
	}

	label := id[len(DateLayout)+1:]
	if label[2] == '-' {
		label = label[:2] + ":" + label[3:]
	}
	if !g.Contains(label) {
		return time.Time{}, "", &InvalidSlotIDError{SlotID: id, Reason: fmt.Sprintf("%q is not a bookable time", label)}
	}
	return date, label, nil
}

// NormalizeSlotID parses id and returns its canonical form.
func (g *Grid) NormalizeSlotID(id string) (string, error) {
	date, label, err := g.ParseSlotID(id)
	if err != nil {
		return "", err
	}
	return FormatSlotID(date, label), nil
}

// ParseDate parses a "YYYY-MM-DD" calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &InvalidRangeError{Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s)}
	}
	return d, nil
}

// civilDate drops the clock and zone of t, keeping its calendar day in t's location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// slotStart is the instant a slot begins in the clinic's time zone.
func slotStart(date time.Time, label string, loc *time.Location) time.Time {
	clock, _ := time.Parse(labelLayout, label)
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
}
