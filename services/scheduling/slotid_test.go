package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestSlotIDRoundTrip(t *testing.T) {
	grid := DefaultGrid()
	dates := []time.Time{
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		for _, label := range grid.Labels() {
			id := FormatSlotID(d, label)
			if len(id) != 16 {
				t.Fatalf("expected fixed width id, got %q", id)
			}
			gotDate, gotLabel, err := grid.ParseSlotID(id)
			if err != nil {
				t.Fatalf("ParseSlotID(%q) failed: %v", id, err)
			}
			if !gotDate.Equal(d) || gotLabel != label {
				t.Errorf("round trip of %q gave (%s, %s)", id, gotDate.Format(DateLayout), gotLabel)
			}
		}
	}
}

func TestParseSlotIDAcceptsLegacyForm(t *testing.T) {
	grid := DefaultGrid()
	id, err := grid.NormalizeSlotID("2024-06-03-09-30")
	if err != nil {
		t.Fatalf("legacy id rejected: %v", err)
	}
	if id != "2024-06-03-09:30" {
		t.Errorf("expected canonical id, got %q", id)
	}
}

func TestParseSlotIDRejectsMalformed(t *testing.T) {
	grid := DefaultGrid()
	cases := []string{
		"",
		"not-a-slot-id",
		"2024-06-03",
		"2024-06-03-9:00",
		"2024-06-03T09:00",
		"2024-06-03-09:15",
		"2024-02-30-09:00",
		"2024-13-01-09:00",
		"2024-06-03-12:00",
		"2024-06-03-09:00 ",
	}
	for _, id := range cases {
		_, _, err := grid.ParseSlotID(id)
		var invalid *InvalidSlotIDError
		if !errors.As(err, &invalid) {
			t.Errorf("ParseSlotID(%q): expected InvalidSlotIDError, got %v", id, err)
			continue
		}
		if KindOf(err) != KindInvalidSlotID {
			t.Errorf("ParseSlotID(%q): unexpected kind %s", id, KindOf(err))
		}
	}
}

func TestNewGridValidatesLabels(t *testing.T) {
	bad := [][]string{
		nil,
		{"09:00", "09:00"},
		{"10:00", "09:00"},
		{"9:00"},
		{"25:00"},
		{"09-00"},
	}
	for _, labels := range bad {
		if _, err := NewGrid(labels); err == nil {
			t.Errorf("NewGrid(%v): expected error", labels)
		}
	}

	g, err := NewGrid([]string{"08:00", "12:00", "17:45"})
	if err != nil {
		t.Fatalf("valid grid rejected: %v", err)
	}
	if _, _, err := g.ParseSlotID("2024-06-03-17:45"); err != nil {
		t.Errorf("custom label not accepted: %v", err)
	}
	if _, _, err := g.ParseSlotID("2024-06-03-09:00"); err == nil {
		t.Errorf("label outside custom grid accepted")
	}
}
