package models

import "time"

// AssistantRequest is the payload of POST /api/assistant/query.
type AssistantRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// ConversationTurn is one exchange kept in the assistant's history.
type ConversationTurn struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// AssistantReply is what the assistant endpoints return to the client.
type AssistantReply struct {
	Success             bool               `json:"success"`
	Response            string             `json:"response"`
	Intent              string             `json:"intent"`
	SessionID           string             `json:"sessionId"`
	Mode                string             `json:"mode"`
	Suggestions         []TimeSlot         `json:"suggestions,omitempty"`
	ConversationHistory []ConversationTurn `json:"conversationHistory"`
}

// VoiceReply wraps a transcription and the assistant's answer to it.
type VoiceReply struct {
	Transcription string          `json:"transcription"`
	Reply         *AssistantReply `json:"reply,omitempty"`
}
