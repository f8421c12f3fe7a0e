package assistant

import (
	"context"

	"sapdoc/models"
)

// AssistantService answers free-text scheduling questions.
type AssistantService interface {
	Query(ctx context.Context, sessionID, message string) (*models.AssistantReply, error)
}

// TextGenerator produces a model completion for a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// HistoryStore keeps recent conversation turns per session.
type HistoryStore interface {
	Get(ctx context.Context, sessionID string) ([]models.ConversationTurn, error)
	Set(ctx context.Context, sessionID string, turns []models.ConversationTurn) error
	Clear(ctx context.Context, sessionID string) error
}

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}
