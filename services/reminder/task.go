package reminder

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"sapdoc/models"
)

const (
	TypeAppointmentReminder = "appointment:reminder"
	Queue                   = "default"
)

// TaskID is the asynq task id of a slot's reminder. At most one exists per slot.
func TaskID(slotID string) string {
	return "reminder:" + slotID
}

// NewReminderTask builds the task delivered at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(TaskID(payload.SlotID)),
		asynq.Queue(Queue),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}
