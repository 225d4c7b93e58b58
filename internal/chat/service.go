package chat

import "context"

// Chat describes a conversation known to the chat backend.
type Chat struct {
	ID      string `json:"id"`
	SkillID string `json:"skillId"`
}

// Service is the conversation-management collaborator. Persistence and
// retrieval of authoritative state live behind this boundary.
type Service interface {
	// CreateChat creates a new conversation for the workspace/skill pair
	// and returns it with its server-assigned id.
	CreateChat(ctx context.Context, workspaceID, skillID string) (Chat, error)

	// FetchMessages retrieves the authoritative message sequence for a
	// conversation from its source of truth.
	FetchMessages(ctx context.Context, chatID string) ([]Message, error)
}

// Selector is notified when the tracker makes a new conversation active.
type Selector interface {
	// SelectChat marks the conversation as the active one in the UI.
	SelectChat(chatID string)
}

// SkillChain is the ordered fallback chain used to resolve a capability
// (skill) id when a conversation must be created first.
type SkillChain struct {
	ActiveChatSkillID       string
	ActiveSkillID           string
	WorkspaceDefaultSkillID string
}

// Resolve returns the first non-empty skill id in fallback order:
// active chat's skill, then active skill, then workspace default.
func (c SkillChain) Resolve() (string, bool) {
	for _, id := range []string{c.ActiveChatSkillID, c.ActiveSkillID, c.WorkspaceDefaultSkillID} {
		if id != "" {
			return id, true
		}
	}
	return "", false
}
