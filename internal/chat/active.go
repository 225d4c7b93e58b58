package chat

import "sync"

// ActiveChat tracks which conversation the UI currently has selected.
// Implements Selector.
type ActiveChat struct {
	mu     sync.RWMutex
	chatID string
}

// NewActiveChat creates an ActiveChat with no selection.
func NewActiveChat() *ActiveChat {
	return &ActiveChat{}
}

// SelectChat marks the conversation as the active one.
func (a *ActiveChat) SelectChat(chatID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chatID = chatID
}

// ChatID returns the currently selected conversation id, empty if none.
func (a *ActiveChat) ChatID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.chatID
}
