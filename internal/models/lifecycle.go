// Package models defines the data structures for operation lifecycle events.
package models

// Event type values for operation lifecycle events.
const (
	EventOperationStarted   = "operation.started"
	EventOperationCompleted = "operation.completed"
	EventOperationFailed    = "operation.failed"
	EventOperationTimedOut  = "operation.timedOut"
)

// OperationEvent represents one lifecycle transition of a tracked
// transcription operation.
type OperationEvent struct {
	EventType   string `json:"eventType"`
	OperationID string `json:"operationId"`
	ChatID      string `json:"chatId"`
	WorkspaceID string `json:"workspaceId,omitempty"`
	Timestamp   int64  `json:"timestamp"`
	DisplayName string `json:"displayName,omitempty"`
	Attempts    int    `json:"attempts,omitempty"`
	Error       string `json:"error,omitempty"`
}
