package track

import (
	"context"
	"errors"
	"sync"
	"time"

	"chat-transcription-tracker/internal/chat"
	"chat-transcription-tracker/internal/config"
	"chat-transcription-tracker/internal/events"
	"chat-transcription-tracker/internal/models"
	"chat-transcription-tracker/internal/observability/logging"
	"chat-transcription-tracker/internal/observability/metrics"
	"chat-transcription-tracker/internal/operation"
	"chat-transcription-tracker/internal/status"
)

// Request carries a submitted text together with the caller's current
// conversation context.
type Request struct {
	// Text is the raw submitted text, possibly a pending operation reference.
	Text string
	// ChatID is the active target conversation, empty when none is active.
	ChatID string
	// Skills is the fallback chain used when a conversation must be created.
	Skills chat.SkillChain
}

// Tracker drives a pending transcription operation from submission through
// completion, failure, or timeout. One sequential task per invocation;
// tracking the same operation or conversation twice concurrently is a
// caller error and is rejected with ErrAlreadyTracking.
type Tracker struct {
	injector    *Injector
	poller      *Poller
	reconciler  *Reconciler
	publisher   *events.Publisher
	sink        *status.Sink
	workspaceID string
	metrics     *metrics.Metrics

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewTracker wires the injector, poller, and reconciler over the shared
// message store and collaborators.
func NewTracker(
	store *chat.Store,
	service chat.Service,
	selector chat.Selector,
	fetcher StatusFetcher,
	publisher *events.Publisher,
	sink *status.Sink,
	cfg *config.Configuration,
) *Tracker {
	return &Tracker{
		injector:    NewInjector(store, service, selector, cfg.Workspace.WorkspaceID),
		poller:      NewPoller(fetcher, cfg.Poll),
		reconciler:  NewReconciler(store, service, sink),
		publisher:   publisher,
		sink:        sink,
		workspaceID: cfg.Workspace.WorkspaceID,
		metrics:     metrics.DefaultMetrics,
	}
}

// Track processes a submitted text. Non-reference input returns nil with
// no side effects. For a pending operation reference it injects optimistic
// state, polls until a terminal outcome, and reconciles the conversation.
// The busy flag is set for the duration and cleared exactly once.
func (t *Tracker) Track(ctx context.Context, req Request) error {
	ref, err := operation.ParseRef(req.Text)
	if err != nil {
		return err
	}
	if ref == nil {
		return nil
	}

	if err := t.acquire(ref.OperationID, req.ChatID); err != nil {
		return err
	}
	defer t.release(ref.OperationID, req.ChatID)

	logger := logging.WithOperation(ref.OperationID)
	logger.Info().Str("displayName", ref.DisplayName).Msg("Tracking transcription operation")

	t.sink.SetTranscribing(true)
	defer t.sink.SetTranscribing(false)

	t.metrics.RecordOperationStart()
	start := time.Now()

	lifecycle := operation.NewLifecycle(ref.OperationID)

	inj, err := t.injector.Inject(ctx, req.ChatID, req.Skills, *ref)
	if err != nil {
		t.metrics.RecordOperationEnd(resultLabel(err), time.Since(start).Seconds())
		t.sink.SetError(err.Error())
		return err
	}
	t.publishEvent(ctx, models.EventOperationStarted, ref, inj, 0, "")

	out := t.poller.Poll(ctx, ref.OperationID)
	if out.Kind == OutcomeCancelled {
		// Torn-down context: stop without committing terminal side effects.
		logger.Info().Int("attempts", out.Attempts).Msg("Tracking cancelled")
		t.metrics.RecordOperationEnd("cancelled", time.Since(start).Seconds())
		return out.Cause
	}

	switch out.Kind {
	case OutcomeCompleted:
		lifecycle.Complete()
		t.publishEvent(ctx, models.EventOperationCompleted, ref, inj, out.Attempts, "")
		t.metrics.RecordOperationEnd("completed", time.Since(start).Seconds())
	case OutcomeFailed:
		lifecycle.Fail(out.Reason)
		t.publishEvent(ctx, models.EventOperationFailed, ref, inj, out.Attempts, out.Reason)
		t.metrics.RecordOperationEnd("failed", time.Since(start).Seconds())
	case OutcomeTimedOut:
		lifecycle.TimeOut(out.Reason)
		t.publishEvent(ctx, models.EventOperationTimedOut, ref, inj, out.Attempts, out.Reason)
		t.metrics.RecordOperationEnd("timed_out", time.Since(start).Seconds())
	}

	logger.Info().
		Str("state", lifecycle.State().String()).
		Int("attempts", out.Attempts).
		Msg("Operation reached terminal state")

	return t.reconciler.Reconcile(ctx, inj, out)
}

// acquire registers the operation (and target conversation, when given) as
// in flight. Returns ErrAlreadyTracking on overlap.
func (t *Tracker) acquire(operationID, chatID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inflight == nil {
		t.inflight = make(map[string]struct{})
	}
	keys := inflightKeys(operationID, chatID)
	for _, k := range keys {
		if _, busy := t.inflight[k]; busy {
			return ErrAlreadyTracking
		}
	}
	for _, k := range keys {
		t.inflight[k] = struct{}{}
	}
	return nil
}

func (t *Tracker) release(operationID, chatID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, k := range inflightKeys(operationID, chatID) {
		delete(t.inflight, k)
	}
}

func inflightKeys(operationID, chatID string) []string {
	keys := []string{"op:" + operationID}
	if chatID != "" {
		keys = append(keys, "chat:"+chatID)
	}
	return keys
}

func (t *Tracker) publishEvent(ctx context.Context, eventType string, ref *operation.Ref, inj *Injection, attempts int, errText string) {
	if t.publisher == nil {
		return
	}
	// Publish failures are logged by the publisher; tracking does not
	// depend on event delivery.
	_ = t.publisher.PublishLifecycle(ctx, models.OperationEvent{
		EventType:   eventType,
		OperationID: ref.OperationID,
		ChatID:      inj.ChatID,
		WorkspaceID: t.workspaceID,
		Timestamp:   time.Now().UnixMilli(),
		DisplayName: ref.DisplayName,
		Attempts:    attempts,
		Error:       errText,
	})
}

// resultLabel maps an injection error to a metrics result label.
func resultLabel(err error) string {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return "configuration_error"
	}
	return "inject_error"
}
