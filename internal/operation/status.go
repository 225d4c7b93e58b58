package operation

import (
	"errors"
	"fmt"
	"sync"
)

// State represents the lifecycle state of a tracked operation.
type State int

const (
	// StateTracking - Operation is being polled, no terminal outcome yet.
	StateTracking State = iota
	// StateCompleted - Server reported the transcription finished successfully.
	StateCompleted
	// StateFailed - Server reported the transcription failed.
	StateFailed
	// StateTimedOut - The poll attempt budget was exhausted without a terminal status.
	StateTimedOut
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateTracking:
		return "TRACKING"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	case StateTimedOut:
		return "TIMED_OUT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// IsTerminal returns true if the state is terminal (no further polling occurs).
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateTimedOut
}

// ErrAlreadyTerminal is returned when a terminal transition is attempted
// on an operation that already reached a terminal state.
var ErrAlreadyTerminal = errors.New("operation already reached a terminal state")

// Lifecycle manages the state machine for a single tracked operation.
// Thread-safe for concurrent access.
//
// State transitions:
//
//	TRACKING → COMPLETED
//	TRACKING → FAILED
//	TRACKING → TIMED_OUT
//
// Terminal states are committed at most once; any second terminal
// transition returns ErrAlreadyTerminal.
type Lifecycle struct {
	mu          sync.RWMutex
	operationID string
	state       State
	reason      string
}

// NewLifecycle creates a new operation lifecycle in TRACKING state.
func NewLifecycle(operationID string) *Lifecycle {
	return &Lifecycle{
		operationID: operationID,
		state:       StateTracking,
	}
}

// OperationID returns the operation id.
func (l *Lifecycle) OperationID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.operationID
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// IsTerminal returns true if the operation reached a terminal state.
func (l *Lifecycle) IsTerminal() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.IsTerminal()
}

// Reason returns the failure reason, empty unless the state is FAILED or TIMED_OUT.
func (l *Lifecycle) Reason() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reason
}

// Complete transitions the operation to COMPLETED.
func (l *Lifecycle) Complete() error {
	return l.terminate(StateCompleted, "")
}

// Fail transitions the operation to FAILED with the given reason.
func (l *Lifecycle) Fail(reason string) error {
	return l.terminate(StateFailed, reason)
}

// TimeOut transitions the operation to TIMED_OUT with the given reason.
func (l *Lifecycle) TimeOut(reason string) error {
	return l.terminate(StateTimedOut, reason)
}

func (l *Lifecycle) terminate(next State, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.IsTerminal() {
		return ErrAlreadyTerminal
	}
	l.state = next
	l.reason = reason
	return nil
}
