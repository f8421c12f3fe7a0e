package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sapdoc/metrics"
	"sapdoc/models"
	"sapdoc/services/scheduling"
)

// historyTurns is how many recent exchanges are kept per session.
const historyTurns = 10

// Service answers with keyword intents over the scheduling service and, when a
// TextGenerator is configured, lets the model phrase the final reply.
type Service struct {
	scheduling scheduling.SchedulingService
	llm        TextGenerator
	history    HistoryStore
	logger     *zap.Logger
	now        func() time.Time
}

// NewService builds the assistant. llm and history may be nil.
func NewService(sched scheduling.SchedulingService, llm TextGenerator, history HistoryStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scheduling: sched,
		llm:        llm,
		history:    history,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) Query(ctx context.Context, sessionID, message string) (*models.AssistantReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, &scheduling.ValidationError{Field: "message", Message: "Message is required"}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	turns := s.loadHistory(ctx, sessionID)

	intent := Classify(message)
	response, suggestions, err := s.answer(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("answer %s: %w", intent, err)
	}

	mode := "local"
	if s.llm != nil {
		prompt := s.buildPrompt(turns, message, intent, response)
		text, err := s.llm.GenerateContent(ctx, prompt)
		switch {
		case err != nil:
			s.logger.Warn("Model call failed, using local answer", zap.String("intent", intent), zap.Error(err))
		case strings.TrimSpace(text) == "":
			s.logger.Warn("Model returned an empty answer, using local answer", zap.String("intent", intent))
		default:
			response = strings.TrimSpace(text)
			mode = "gemini"
		}
	}
	metrics.AssistantQueries.WithLabelValues(intent, mode).Inc()

	turns = append(turns, models.ConversationTurn{
		User:      message,
		Assistant: response,
		Intent:    intent,
		Timestamp: s.now().UTC(),
	})
	if len(turns) > historyTurns {
		turns = turns[len(turns)-historyTurns:]
	}
	s.saveHistory(ctx, sessionID, turns)

	return &models.AssistantReply{
		Success:             true,
		Response:            response,
		Intent:              intent,
		SessionID:           sessionID,
		Mode:                mode,
		Suggestions:         suggestions,
		ConversationHistory: turns,
	}, nil
}

func (s *Service) loadHistory(ctx context.Context, sessionID string) []models.ConversationTurn {
	if s.history == nil {
		return nil
	}
	turns, err := s.history.Get(ctx, sessionID)
	if err != nil {
		s.logger.Warn("Failed to load conversation history", zap.String("sessionId", sessionID), zap.Error(err))
		return nil
	}
	return turns
}

func (s *Service) saveHistory(ctx context.Context, sessionID string, turns []models.ConversationTurn) {
	if s.history == nil {
		return
	}
	if err := s.history.Set(ctx, sessionID, turns); err != nil {
		s.logger.Warn("Failed to save conversation history", zap.String("sessionId", sessionID), zap.Error(err))
	}
}

// buildPrompt grounds the model in office facts and the locally computed answer
// so it rephrases rather than invents availability.
func (s *Service) buildPrompt(turns []models.ConversationTurn, message, intent, localAnswer string) string {
	info := s.scheduling.OfficeInfo()

	var b strings.Builder
	b.WriteString("You are the scheduling assistant of a medical office. Answer briefly and politely.\n")
	fmt.Fprintf(&b, "Office hours: %s-%s, %s to %s (%s).\n",
		info.Hours.Start, info.Hours.End, info.Days[0], info.Days[len(info.Days)-1], info.Timezone)
	fmt.Fprintf(&b, "Appointment times: %s.\n", strings.Join(info.TimeSlots, ", "))
	fmt.Fprintf(&b, "Policies: %s. %s.\n", info.AdvanceBooking, info.CancellationPolicy)
	b.WriteString("Never invent appointment times; only use the facts below.\n\n")

	if len(turns) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, t := range turns {
			fmt.Fprintf(&b, "Patient: %s\nAssistant: %s\n", t.User, t.Assistant)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Detected intent: %s\nFacts:\n%s\n\nPatient: %s\nAssistant:", intent, localAnswer, message)
	return b.String()
}
