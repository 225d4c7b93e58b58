// Package track implements the pending transcription operation tracker:
// it recognizes pending-operation references, injects optimistic
// conversation state, polls the status endpoint until a terminal state,
// and reconciles the conversation once the operation finishes.
package track

import "errors"

// User-visible messages. The localized strings are part of the product
// surface and are preserved verbatim.
const (
	// MsgSkillNotConfigured is surfaced when no skill id resolves and a
	// conversation cannot be created.
	MsgSkillNotConfigured = "Unica Chat skill is not configured. Please contact the administrator."

	// MsgTranscriptionFailed is the fallback when the server reports
	// failure without a reason.
	MsgTranscriptionFailed = "Транскрибация не удалась. Попробуйте снова."

	// MsgTranscriptionTimedOut is surfaced when the poll attempt budget
	// is exhausted.
	MsgTranscriptionTimedOut = "Транскрибация заняла слишком много времени. Попробуйте снова."
)

// ErrAlreadyTracking is returned when a second tracking invocation is made
// for an operation or conversation that already has one in flight.
// Concurrent tracking is a caller precondition violation, not a supported
// mode.
var ErrAlreadyTracking = errors.New("operation or conversation is already being tracked")

// ConfigurationError indicates no skill id could be resolved for creating
// a conversation. Fatal to the attempt: nothing is created or injected.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}
