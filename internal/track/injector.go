package track

import (
	"context"

	"chat-transcription-tracker/internal/chat"
	"chat-transcription-tracker/internal/observability/logging"
	"chat-transcription-tracker/internal/observability/metrics"
	"chat-transcription-tracker/internal/operation"
)

// Injector commits the optimistic conversation state for a tracked
// operation: it establishes a target conversation (creating one through
// the conversation-management collaborator if none is active) and appends
// the two transient entries.
type Injector struct {
	store       *chat.Store
	service     chat.Service
	selector    chat.Selector
	workspaceID string
	metrics     *metrics.Metrics
}

// NewInjector creates an injector writing into the given store.
func NewInjector(store *chat.Store, service chat.Service, selector chat.Selector, workspaceID string) *Injector {
	return &Injector{
		store:       store,
		service:     service,
		selector:    selector,
		workspaceID: workspaceID,
		metrics:     metrics.DefaultMetrics,
	}
}

// Injection records what the injector committed, so the reconciler can
// later supersede or annotate exactly those entries.
type Injection struct {
	ChatID              string
	UserMessageID       string
	TranscriptMessageID string
	CreatedChat         bool
}

// Inject establishes the target conversation and appends the user and
// assistant transient entries atomically. When no target conversation is
// given and no skill id resolves from the fallback chain, it fails with a
// ConfigurationError and nothing is created or injected.
func (i *Injector) Inject(ctx context.Context, targetChatID string, skills chat.SkillChain, ref operation.Ref) (*Injection, error) {
	logger := logging.WithOperation(ref.OperationID)

	chatID := targetChatID
	created := false
	if chatID == "" {
		skillID, ok := skills.Resolve()
		if !ok {
			i.metrics.RecordConfigurationError()
			logger.Error().Msg("No skill id resolvable, cannot create conversation")
			return nil, &ConfigurationError{Message: MsgSkillNotConfigured}
		}

		newChat, err := i.service.CreateChat(ctx, i.workspaceID, skillID)
		i.metrics.RecordChatCreated(err)
		if err != nil {
			logger.Error().Err(err).Str("skillId", skillID).Msg("Conversation creation failed")
			return nil, err
		}
		chatID = newChat.ID
		created = true

		if i.selector != nil {
			i.selector.SelectChat(chatID)
		}
		logger.Info().Str("chatId", chatID).Str("skillId", skillID).Msg("Created conversation for tracked operation")
	}

	user, transcript := chat.NewTranscriptPair(chatID, ref.DisplayName)
	i.store.AppendPair(chatID, user, transcript)

	logger.Debug().Str("chatId", chatID).Msg("Injected transient transcript entries")
	return &Injection{
		ChatID:              chatID,
		UserMessageID:       user.ID,
		TranscriptMessageID: transcript.ID,
		CreatedChat:         created,
	}, nil
}
