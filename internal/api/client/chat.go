package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"chat-transcription-tracker/internal/chat"
)

// createChatRequest is the conversation creation payload.
type createChatRequest struct {
	WorkspaceID string `json:"workspaceId"`
	SkillID     string `json:"skillId"`
}

// CreateChat creates a new conversation and returns it with its
// server-assigned id. Implements chat.Service.
func (c *Client) CreateChat(ctx context.Context, workspaceID, skillID string) (chat.Chat, error) {
	payload, err := json.Marshal(createChatRequest{
		WorkspaceID: workspaceID,
		SkillID:     skillID,
	})
	if err != nil {
		return chat.Chat{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat/chats", bytes.NewReader(payload))
	if err != nil {
		return chat.Chat{}, err
	}
	c.apply(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return chat.Chat{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return chat.Chat{}, fmt.Errorf("create chat: HTTP %d", resp.StatusCode)
	}

	var created chat.Chat
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return chat.Chat{}, fmt.Errorf("decode created chat: %w", err)
	}
	return created, nil
}

// FetchMessages retrieves the authoritative message sequence for a
// conversation. Implements chat.Service.
func (c *Client) FetchMessages(ctx context.Context, chatID string) ([]chat.Message, error) {
	endpoint := c.baseURL + "/api/chat/chats/" + url.PathEscape(chatID) + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch messages: HTTP %d", resp.StatusCode)
	}

	var msgs []chat.Message
	if err := json.NewDecoder(resp.Body).Decode(&msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return msgs, nil
}
