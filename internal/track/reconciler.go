package track

import (
	"context"

	"chat-transcription-tracker/internal/chat"
	"chat-transcription-tracker/internal/observability/logging"
	"chat-transcription-tracker/internal/status"
)

// Reconciler finalizes conversation state once a tracked operation
// reaches a terminal outcome.
type Reconciler struct {
	store   *chat.Store
	service chat.Service
	sink    *status.Sink
}

// NewReconciler creates a reconciler over the given store and collaborators.
func NewReconciler(store *chat.Store, service chat.Service, sink *status.Sink) *Reconciler {
	return &Reconciler{
		store:   store,
		service: service,
		sink:    sink,
	}
}

// Reconcile applies a terminal poll outcome.
//
// Completed: the conversation's messages are refreshed from the source of
// truth and the transient entries are superseded wholesale, never left
// alongside their authoritative counterparts.
//
// Failed/TimedOut: the transient transcript entry's status is annotated in
// place and a single user-visible message is surfaced; the entries are kept
// so the user retains visibility of what was attempted.
func (r *Reconciler) Reconcile(ctx context.Context, inj *Injection, out Outcome) error {
	logger := logging.WithComponent("reconciler")

	switch out.Kind {
	case OutcomeCompleted:
		msgs, err := r.service.FetchMessages(ctx, inj.ChatID)
		if err != nil {
			logger.Error().Err(err).Str("chatId", inj.ChatID).Msg("Authoritative refresh failed")
			r.sink.SetError(err.Error())
			return err
		}
		r.store.Replace(inj.ChatID, msgs)
		logger.Info().Str("chatId", inj.ChatID).Int("messages", len(msgs)).Msg("Conversation refreshed after completion")
		return nil

	case OutcomeFailed, OutcomeTimedOut:
		r.store.AnnotateTranscript(inj.ChatID, inj.TranscriptMessageID, chat.TranscriptFailed, out.Reason)
		r.sink.SetError(out.Reason)
		logger.Info().Str("chatId", inj.ChatID).Str("reason", out.Reason).Msg("Transcription did not complete")
		return nil

	default:
		// Non-terminal outcomes never reach the reconciler.
		return nil
	}
}
