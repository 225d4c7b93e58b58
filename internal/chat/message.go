// Package chat defines the conversation message model and the locally
// held message store the tracker mutates.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author side of a conversation message.
type Role string

// Conversation role constants.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Transcript metadata values.
const (
	// TypeTranscript tags a message as a transcription result entry.
	TypeTranscript = "transcript"

	TranscriptProcessing = "processing"
	TranscriptCompleted  = "completed"
	TranscriptFailed     = "failed"
)

// ProcessingText is the fixed content of the in-progress transcript entry.
const ProcessingText = "Аудиозапись загружена. Идёт расшифровка..."

// Metadata carries structured annotations for a message.
type Metadata struct {
	Type             string `json:"type,omitempty"`
	TranscriptStatus string `json:"transcriptStatus,omitempty"`
	Error            string `json:"error,omitempty"`
}

// Message is a single conversation entry. Transient entries are synthesized
// locally by the tracker; their IDs are unique within the process lifetime
// but are never assumed unique server-side.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTranscriptPair builds the two transient entries injected while a
// transcription is in flight: a user entry carrying the uploaded audio's
// display name and an assistant entry tagged as a processing transcript.
func NewTranscriptPair(chatID, displayName string) (Message, Message) {
	now := time.Now().UTC()

	user := Message{
		ID:        "local-" + uuid.NewString(),
		ChatID:    chatID,
		Role:      RoleUser,
		Content:   displayName,
		CreatedAt: now,
	}
	assistant := Message{
		ID:      "local-transcript-" + uuid.NewString(),
		ChatID:  chatID,
		Role:    RoleAssistant,
		Content: ProcessingText,
		Metadata: &Metadata{
			Type:             TypeTranscript,
			TranscriptStatus: TranscriptProcessing,
		},
		CreatedAt: now,
	}
	return user, assistant
}
