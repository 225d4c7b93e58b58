package track

import (
	"context"
	"errors"
	"testing"
	"time"

	"chat-transcription-tracker/internal/api/client"
	"chat-transcription-tracker/internal/chat"
	"chat-transcription-tracker/internal/config"
	"chat-transcription-tracker/internal/events"
	"chat-transcription-tracker/internal/operation"
	"chat-transcription-tracker/internal/status"
)

type trackerFixture struct {
	store   *chat.Store
	service *fakeChatService
	fetcher *scriptedFetcher
	sink    *status.Sink
	tracker *Tracker
}

func newTrackerFixture(fetcher *scriptedFetcher, service *fakeChatService) *trackerFixture {
	store := chat.NewStore()
	sink := status.NewSink()
	cfg := &config.Configuration{
		Poll: config.PollConfig{
			Interval:    time.Millisecond,
			MaxAttempts: 600,
		},
		Workspace: config.WorkspaceConfig{
			WorkspaceID:    "ws-1",
			DefaultSkillID: "skill-default",
		},
	}
	publisher := events.New(&events.Config{Enabled: false})
	tracker := NewTracker(store, service, &fakeSelector{}, fetcher, publisher, sink, cfg)
	return &trackerFixture{
		store:   store,
		service: service,
		fetcher: fetcher,
		sink:    sink,
		tracker: tracker,
	}
}

func TestTracker_NonSentinelInput_NoSideEffects(t *testing.T) {
	fx := newTrackerFixture(&scriptedFetcher{}, &fakeChatService{})

	err := fx.tracker.Track(context.Background(), Request{Text: "just a chat message", ChatID: "chat-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fx.fetcher.callCount() != 0 {
		t.Error("expected no status requests")
	}
	if len(fx.store.Messages("chat-1")) != 0 {
		t.Error("expected no injected entries")
	}
	if fx.sink.IsTranscribing() {
		t.Error("expected busy flag untouched")
	}
	if fx.sink.Error() != "" {
		t.Errorf("expected no error, got %q", fx.sink.Error())
	}
}

func TestTracker_EmptyOperationID_IsCallerError(t *testing.T) {
	fx := newTrackerFixture(&scriptedFetcher{}, &fakeChatService{})

	err := fx.tracker.Track(context.Background(), Request{Text: "__PENDING_OPERATION:", ChatID: "chat-1"})
	if !errors.Is(err, operation.ErrEmptyOperationID) {
		t.Fatalf("expected ErrEmptyOperationID, got %v", err)
	}
	if len(fx.store.Messages("chat-1")) != 0 {
		t.Error("expected no injected entries")
	}
}

func TestTracker_CompletedFlow(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []pollStep{
		{status: &client.OperationStatus{Status: "processing"}},
		{status: &client.OperationStatus{Status: "completed"}},
	}}
	service := &fakeChatService{messages: map[string][]chat.Message{
		"chat-1": {
			{ID: "srv-1", ChatID: "chat-1", Role: chat.RoleUser, Content: "meeting.wav"},
			{ID: "srv-2", ChatID: "chat-1", Role: chat.RoleAssistant, Content: "transcript text"},
		},
	}}
	fx := newTrackerFixture(fetcher, service)

	err := fx.tracker.Track(context.Background(), Request{
		Text:   "__PENDING_OPERATION:op-1:meeting.wav",
		ChatID: "chat-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Authoritative data superseded the transient entries
	msgs := fx.store.Messages("chat-1")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != "srv-1" || msgs[1].ID != "srv-2" {
		t.Errorf("expected authoritative messages, got %+v", msgs)
	}

	if fx.sink.IsTranscribing() {
		t.Error("expected busy flag cleared")
	}
	if fx.sink.Error() != "" {
		t.Errorf("expected no error, got %q", fx.sink.Error())
	}
	if fetcher.callCount() != 2 {
		t.Errorf("expected 2 status requests, got %d", fetcher.callCount())
	}
}

func TestTracker_FailedFlow(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []pollStep{
		{status: &client.OperationStatus{Status: "failed", Error: "bad audio"}},
	}}
	fx := newTrackerFixture(fetcher, &fakeChatService{})

	err := fx.tracker.Track(context.Background(), Request{
		Text:   "__PENDING_OPERATION:op-1",
		ChatID: "chat-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fx.sink.Error() != "bad audio" {
		t.Errorf("expected server reason surfaced, got %q", fx.sink.Error())
	}
	if fx.sink.IsTranscribing() {
		t.Error("expected busy flag cleared")
	}

	// Entries retained with failure annotation
	msgs := fx.store.Messages("chat-1")
	if len(msgs) != 2 {
		t.Fatalf("expected retained entries, got %d", len(msgs))
	}
	if msgs[1].Metadata.TranscriptStatus != chat.TranscriptFailed {
		t.Errorf("expected failed annotation, got %q", msgs[1].Metadata.TranscriptStatus)
	}
}

func TestTracker_TimedOutFlow(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []pollStep{
		{err: errors.New("connection refused")},
	}}
	store := chat.NewStore()
	sink := status.NewSink()
	cfg := &config.Configuration{
		Poll: config.PollConfig{
			Interval:    time.Millisecond,
			MaxAttempts: 5,
		},
		Workspace: config.WorkspaceConfig{WorkspaceID: "ws-1"},
	}
	tracker := NewTracker(store, &fakeChatService{}, &fakeSelector{}, fetcher, events.New(nil), sink, cfg)

	err := tracker.Track(context.Background(), Request{
		Text:   "__PENDING_OPERATION:op-1",
		ChatID: "chat-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.callCount() != 5 {
		t.Errorf("expected the attempt budget to bound requests, got %d", fetcher.callCount())
	}
	if sink.Error() != MsgTranscriptionTimedOut {
		t.Errorf("expected fixed timeout message, got %q", sink.Error())
	}
	if sink.IsTranscribing() {
		t.Error("expected busy flag cleared")
	}
}

func TestTracker_NoSkillConfigured(t *testing.T) {
	fx := newTrackerFixture(&scriptedFetcher{}, &fakeChatService{})

	err := fx.tracker.Track(context.Background(), Request{
		Text: "__PENDING_OPERATION:op-1",
		// no ChatID, no skills
	})

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if fx.sink.Error() != MsgSkillNotConfigured {
		t.Errorf("expected configuration message surfaced, got %q", fx.sink.Error())
	}
	if fx.sink.IsTranscribing() {
		t.Error("expected busy flag cleared")
	}
	if fx.fetcher.callCount() != 0 {
		t.Error("expected no polling after a configuration error")
	}
	if len(fx.service.createdChats()) != 0 {
		t.Error("expected no chat created")
	}
}

func TestTracker_ConcurrentSameOperation_Rejected(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []pollStep{
		{status: &client.OperationStatus{Status: "processing"}},
	}}
	store := chat.NewStore()
	sink := status.NewSink()
	cfg := &config.Configuration{
		Poll: config.PollConfig{
			Interval:    50 * time.Millisecond,
			MaxAttempts: 600,
		},
		Workspace: config.WorkspaceConfig{WorkspaceID: "ws-1"},
	}
	tracker := NewTracker(store, &fakeChatService{}, &fakeSelector{}, fetcher, events.New(nil), sink, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- tracker.Track(ctx, Request{Text: "__PENDING_OPERATION:op-1", ChatID: "chat-1"})
	}()

	// Wait until the first invocation is polling
	deadline := time.Now().Add(time.Second)
	for fetcher.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if err := tracker.Track(ctx, Request{Text: "__PENDING_OPERATION:op-1", ChatID: "chat-2"}); !errors.Is(err, ErrAlreadyTracking) {
		t.Errorf("expected ErrAlreadyTracking for the same operation, got %v", err)
	}
	if err := tracker.Track(ctx, Request{Text: "__PENDING_OPERATION:op-2", ChatID: "chat-1"}); !errors.Is(err, ErrAlreadyTracking) {
		t.Errorf("expected ErrAlreadyTracking for the same conversation, got %v", err)
	}

	cancel()
	<-done
}

func TestTracker_CancelledMidPoll_NoTerminalSideEffects(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []pollStep{
		{status: &client.OperationStatus{Status: "processing"}},
	}}
	fx := newTrackerFixture(fetcher, &fakeChatService{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := fx.tracker.Track(ctx, Request{Text: "__PENDING_OPERATION:op-1", ChatID: "chat-1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// No terminal side effects: transient entries still processing, no
	// error surfaced, no authoritative refresh.
	msgs := fx.store.Messages("chat-1")
	if len(msgs) != 2 {
		t.Fatalf("expected transient entries intact, got %d", len(msgs))
	}
	if msgs[1].Metadata.TranscriptStatus != chat.TranscriptProcessing {
		t.Errorf("expected processing status after cancel, got %q", msgs[1].Metadata.TranscriptStatus)
	}
	if fx.sink.Error() != "" {
		t.Errorf("expected no error surfaced after cancel, got %q", fx.sink.Error())
	}
	if fx.sink.IsTranscribing() {
		t.Error("expected busy flag cleared")
	}
	if fx.service.fetchCalls != 0 {
		t.Error("expected no authoritative refresh after cancel")
	}
}
