package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sapdoc/models"
	"sapdoc/services/reminder"
)

func TestHandleReminderTaskLogsDelivery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := handleReminderTask(zap.New(core))

	payload, _ := json.Marshal(models.ReminderPayload{SlotID: "2024-06-04-09:30", PatientName: "Ann", Date: "2024-06-04", Time: "09:30"})
	if err := handler(context.Background(), asynq.NewTask(reminder.TypeAppointmentReminder, payload)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	entries := logs.FilterMessage("Appointment reminder").All()
	if len(entries) != 1 {
		t.Fatalf("expected one reminder log line, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["slotId"]; got != "2024-06-04-09:30" {
		t.Errorf("unexpected slotId field %v", got)
	}
}

func TestHandleReminderTaskSkipsRetryOnBadPayload(t *testing.T) {
	handler := handleReminderTask(zap.NewNop())
	err := handler(context.Background(), asynq.NewTask(reminder.TypeAppointmentReminder, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
