package track

import (
	"context"
	"errors"
	"sync"

	"chat-transcription-tracker/internal/api/client"
	"chat-transcription-tracker/internal/chat"
)

// pollStep is one scripted status response.
type pollStep struct {
	status *client.OperationStatus
	err    error
}

// scriptedFetcher replays a fixed sequence of status responses; the last
// step repeats once the script is exhausted.
type scriptedFetcher struct {
	mu    sync.Mutex
	steps []pollStep
	calls int
}

func (f *scriptedFetcher) GetOperation(ctx context.Context, operationID string) (*client.OperationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	step := pollStep{err: errors.New("no scripted response")}
	if f.calls < len(f.steps) {
		step = f.steps[f.calls]
	} else if len(f.steps) > 0 {
		step = f.steps[len(f.steps)-1]
	}
	f.calls++
	return step.status, step.err
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeChatService is an in-memory conversation-management collaborator.
type fakeChatService struct {
	mu         sync.Mutex
	nextChatID string
	createErr  error
	created    []chat.Chat
	messages   map[string][]chat.Message
	fetchErr   error
	fetchCalls int
}

func (s *fakeChatService) CreateChat(ctx context.Context, workspaceID, skillID string) (chat.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return chat.Chat{}, s.createErr
	}
	id := s.nextChatID
	if id == "" {
		id = "chat-new"
	}
	c := chat.Chat{ID: id, SkillID: skillID}
	s.created = append(s.created, c)
	return c, nil
}

func (s *fakeChatService) FetchMessages(ctx context.Context, chatID string) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.messages[chatID], nil
}

func (s *fakeChatService) createdChats() []chat.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chat.Chat, len(s.created))
	copy(out, s.created)
	return out
}

// fakeSelector records UI selection notifications.
type fakeSelector struct {
	mu       sync.Mutex
	selected []string
}

func (s *fakeSelector) SelectChat(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = append(s.selected, chatID)
}

func (s *fakeSelector) selections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}
