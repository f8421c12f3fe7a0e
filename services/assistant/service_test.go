package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"sapdoc/config"
	"sapdoc/database"
	appointmentRepo "sapdoc/database/repository/appointment"
	"sapdoc/models"
	"sapdoc/services/scheduling"
)

// friday1510 is Friday 7 June 2024, 15:10 UTC.
var friday1510 = time.Date(2024, 6, 7, 15, 10, 0, 0, time.UTC)

func newScheduling(t *testing.T) *scheduling.DefaultSchedulingService {
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
	return scheduling.NewSchedulingService(repo, scheduling.Options{
		MaxRangeDays: 62,
		Now:          func() time.Time { return friday1510 },
	})
}

type memoryHistory struct {
	mu    sync.Mutex
	turns map[string][]models.ConversationTurn
}

func (m *memoryHistory) Get(_ context.Context, id string) ([]models.ConversationTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ConversationTurn(nil), m.turns[id]...), nil
}

func (m *memoryHistory) Set(_ context.Context, id string, turns []models.ConversationTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.turns == nil {
		m.turns = map[string][]models.ConversationTurn{}
	}
	m.turns[id] = turns
	return nil
}

func (m *memoryHistory) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turns, id)
	return nil
}

type fakeModel struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeModel) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestQueryAvailabilityListsNearestSlots(t *testing.T) {
	svc := NewService(newScheduling(t), nil, nil, nil)

	reply, err := svc.Query(context.Background(), "s1", "When is the next available appointment?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if reply.Intent != IntentAvailability || reply.Mode != "local" || !reply.Success {
		t.Errorf("unexpected reply meta %+v", reply)
	}
	if !strings.Contains(reply.Response, "Friday, June 7 at 03:30 PM") {
		t.Errorf("expected nearest slot in response, got %q", reply.Response)
	}
	if len(reply.Suggestions) != searchLimit {
		t.Errorf("expected %d suggestions, got %d", searchLimit, len(reply.Suggestions))
	}
	if got := strings.Count(reply.Response, "\n• "); got != alternativesShown {
		t.Errorf("expected %d alternatives listed, got %d", alternativesShown, got)
	}
}

func TestQueryListTruncatesAfterFive(t *testing.T) {
	sched := newScheduling(t)
	ctx := context.Background()
	for i, label := range []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "14:00"} {
		if _, err := sched.Book(ctx, "2024-06-10-"+label, fmt.Sprintf("P%d", i), ""); err != nil {
			t.Fatalf("Book failed: %v", err)
		}
	}

	reply, err := NewService(sched, nil, nil, nil).Query(ctx, "", "Show my appointments")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if reply.Intent != IntentList {
		t.Fatalf("expected list intent, got %s", reply.Intent)
	}
	if !strings.Contains(reply.Response, "There are 7 booked appointments") || !strings.Contains(reply.Response, "... and 2 more") {
		t.Errorf("unexpected list response %q", reply.Response)
	}
	if reply.SessionID == "" {
		t.Errorf("expected a generated session id")
	}
}

func TestQueryKeepsHistoryPerSession(t *testing.T) {
	history := &memoryHistory{}
	svc := NewService(newScheduling(t), nil, history, nil)
	ctx := context.Background()

	if _, err := svc.Query(ctx, "abc", "hello"); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	reply, err := svc.Query(ctx, "abc", "office hours?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(reply.ConversationHistory) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(reply.ConversationHistory))
	}
	if reply.ConversationHistory[0].Intent != IntentHelp || reply.ConversationHistory[1].Intent != IntentOffice {
		t.Errorf("unexpected history %+v", reply.ConversationHistory)
	}
	if !strings.Contains(reply.Response, "09:00 AM to 05:00 PM") {
		t.Errorf("unexpected office response %q", reply.Response)
	}

	for i := 0; i < historyTurns+3; i++ {
		if _, err := svc.Query(ctx, "abc", "hi"); err != nil {
			t.Fatalf("Query failed: %v", err)
		}
	}
	turns, _ := history.Get(ctx, "abc")
	if len(turns) != historyTurns {
		t.Errorf("expected history capped at %d, got %d", historyTurns, len(turns))
	}
}

func TestQueryUsesModelAndFallsBack(t *testing.T) {
	sched := newScheduling(t)
	ctx := context.Background()

	model := &fakeModel{reply: "  The next slot is 3:30 PM today.  "}
	reply, err := NewService(sched, model, nil, nil).Query(ctx, "m", "next free slot?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if reply.Mode != "gemini" || reply.Response != "The next slot is 3:30 PM today." {
		t.Errorf("expected model answer, got %+v", reply)
	}
	if len(model.prompts) != 1 || !strings.Contains(model.prompts[0], "Friday, June 7 at 03:30 PM") {
		t.Errorf("prompt must carry the locally computed facts")
	}

	failing := &fakeModel{err: errors.New("quota exceeded")}
	reply, err = NewService(sched, failing, nil, nil).Query(ctx, "m", "next free slot?")
	if err != nil {
		t.Fatalf("Query must not fail when the model does: %v", err)
	}
	if reply.Mode != "local" || !strings.Contains(reply.Response, "nearest available appointment") {
		t.Errorf("expected local fallback, got %+v", reply)
	}
}

func TestQueryRejectsEmptyMessage(t *testing.T) {
	_, err := NewService(newScheduling(t), nil, nil, nil).Query(context.Background(), "", "   ")
	if scheduling.KindOf(err) != scheduling.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
