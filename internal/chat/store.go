package chat

import (
	"sync"
)

// Store holds the locally observed message sequence per conversation.
// It is an explicit mutable store passed into the tracker; the tracker's
// injector appends to it and the reconciler replaces or annotates entries.
// Thread-safe for concurrent readers.
type Store struct {
	mu       sync.RWMutex
	messages map[string][]Message
}

// NewStore creates an empty message store.
func NewStore() *Store {
	return &Store{
		messages: make(map[string][]Message),
	}
}

// AppendPair appends two messages to a conversation in one critical
// section: a concurrent reader observes both entries or neither.
func (s *Store) AppendPair(chatID string, first, second Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[chatID] = append(s.messages[chatID], first, second)
}

// Messages returns a copy of the conversation's message sequence. The
// copy shares nothing with the store: annotating an entry after the
// call does not reach a returned snapshot.
func (s *Store) Messages(chatID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMessages(s.messages[chatID])
}

// Replace swaps the conversation's entire message sequence with the
// authoritative one. Transient entries are superseded, never kept
// alongside their server-confirmed counterparts.
func (s *Store) Replace(chatID string, msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[chatID] = cloneMessages(msgs)
}

// cloneMessages copies a message sequence including per-entry metadata,
// so stored entries and caller-held slices never alias.
func cloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	for i := range out {
		if out[i].Metadata != nil {
			md := *out[i].Metadata
			out[i].Metadata = &md
		}
	}
	return out
}

// AnnotateTranscript updates a transcript entry's status and error
// annotation in place. Returns false if the message is not present.
func (s *Store) AnnotateTranscript(chatID, messageID, status, errText string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[chatID]
	for i := range msgs {
		if msgs[i].ID != messageID {
			continue
		}
		if msgs[i].Metadata == nil {
			msgs[i].Metadata = &Metadata{Type: TypeTranscript}
		}
		msgs[i].Metadata.TranscriptStatus = status
		msgs[i].Metadata.Error = errText
		return true
	}
	return false
}
