// Package status exposes the tracker's user-facing status surface:
// a single-slot error message and the "is transcribing" busy flag.
package status

import "sync"

// Sink holds the latest user-visible error and the transcribing busy flag.
// Both are settable by the tracker and readable by the UI layer.
// Thread-safe for concurrent access.
type Sink struct {
	mu           sync.RWMutex
	lastError    string
	transcribing bool
}

// NewSink creates an empty status sink.
func NewSink() *Sink {
	return &Sink{}
}

// SetError records a user-visible error message, replacing any previous one.
func (s *Sink) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// ClearError clears the error slot.
func (s *Sink) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// Error returns the current user-visible error message, empty if none.
func (s *Sink) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// SetTranscribing sets the busy flag.
func (s *Sink) SetTranscribing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcribing = v
}

// IsTranscribing reports whether a transcription is currently tracked.
func (s *Sink) IsTranscribing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcribing
}
