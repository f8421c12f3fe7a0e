package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sapdoc/models"
	"sapdoc/services/scheduling"
)

const (
	searchHorizonDays = 14
	searchLimit       = 10
	alternativesShown = 5
	bookingsListed    = 5
)

// FormatTime12h renders "14:30" as "02:30 PM".
func FormatTime12h(label string) string {
	t, err := time.Parse("15:04", label)
	if err != nil {
		return label
	}
	return t.Format("03:04 PM")
}

// FormatDateLong renders "2024-06-03" as "Monday, June 3".
func FormatDateLong(date string) string {
	d, err := time.Parse(scheduling.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2")
}

func describeSlot(s models.TimeSlot) string {
	return fmt.Sprintf("%s at %s", FormatDateLong(s.Date), FormatTime12h(s.Time))
}

// answer builds the rule-based reply for intent.
func (s *Service) answer(ctx context.Context, intent string) (string, []models.TimeSlot, error) {
	switch intent {
	case IntentAvailability:
		return s.answerAvailability(ctx)
	case IntentBook:
		return s.answerBook(ctx)
	case IntentCancel:
		return "To cancel or reschedule an appointment, open it on the schedule and choose **Cancel**, then book a new slot. " +
			"Please let us know at least 24 hours in advance so the slot can be offered to someone else.", nil, nil
	case IntentOffice:
		return s.answerOffice(), nil, nil
	case IntentList:
		return s.answerList(ctx)
	case IntentHelp:
		return "Hello! I can help you with:\n" +
			"• Finding the nearest available appointment\n" +
			"• Booking or cancelling an appointment\n" +
			"• Office hours and policies\n" +
			"• Listing booked appointments\n\n" +
			"Try asking \"When is the next available slot?\"", nil, nil
	default:
		return "I'm not sure I understood that. I can find available slots, explain how to book or cancel, " +
			"share office hours, or list booked appointments. What would you like to do?", nil, nil
	}
}

func (s *Service) answerAvailability(ctx context.Context) (string, []models.TimeSlot, error) {
	slots, err := s.scheduling.NextAvailable(ctx, searchHorizonDays, searchLimit)
	if err != nil {
		return "", nil, err
	}
	if len(slots) == 0 {
		return "I'm sorry, there are no available appointments in the next two weeks. " +
			"Please contact the office for other options.", nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The nearest available appointment is on **%s**.", describeSlot(slots[0]))
	rest := slots[1:]
	if len(rest) > alternativesShown {
		rest = rest[:alternativesShown]
	}
	if len(rest) > 0 {
		b.WriteString("\n\nOther available times:")
		for _, slot := range rest {
			b.WriteString("\n• " + describeSlot(slot))
		}
	}
	b.WriteString("\n\nWould you like to book one of these?")
	return b.String(), slots, nil
}

func (s *Service) answerBook(ctx context.Context) (string, []models.TimeSlot, error) {
	slots, err := s.scheduling.NextAvailable(ctx, searchHorizonDays, 1)
	if err != nil {
		return "", nil, err
	}
	msg := "To book an appointment, pick a free slot on the weekly schedule and enter the patient's name " +
		"with an optional description of the visit."
	if len(slots) > 0 {
		msg += fmt.Sprintf("\n\nThe earliest free slot is %s.", describeSlot(slots[0]))
	}
	return msg, slots, nil
}

func (s *Service) answerOffice() string {
	info := s.scheduling.OfficeInfo()
	return fmt.Sprintf("Our office is open **%s to %s**, %s to %s.\n\n• %s\n• %s",
		FormatTime12h(info.Hours.Start), FormatTime12h(info.Hours.End),
		info.Days[0], info.Days[len(info.Days)-1],
		info.AdvanceBooking, info.CancellationPolicy)
}

func (s *Service) answerList(ctx context.Context) (string, []models.TimeSlot, error) {
	booked, err := s.scheduling.Booked(ctx)
	if err != nil {
		return "", nil, err
	}
	if len(booked) == 0 {
		return "There are no booked appointments at the moment.", nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "There are %d booked appointments:", len(booked))
	shown := booked
	if len(shown) > bookingsListed {
		shown = shown[:bookingsListed]
	}
	for _, slot := range shown {
		fmt.Fprintf(&b, "\n• %s - %s", describeSlot(slot), slot.PatientName)
	}
	if extra := len(booked) - len(shown); extra > 0 {
		fmt.Fprintf(&b, "\n... and %d more", extra)
	}
	return b.String(), nil, nil
}
