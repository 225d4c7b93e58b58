package events

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"chat-transcription-tracker/internal/models"
	"chat-transcription-tracker/internal/observability/metrics"
)

func TestNew_DisabledMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"disabled", &Config{Enabled: false, Brokers: []string{"localhost:9092"}}},
		{"no brokers", &Config{Enabled: true, Brokers: []string{}}},
		{"nil brokers", &Config{Enabled: true, Brokers: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg)
			if p == nil {
				t.Fatal("expected non-nil publisher")
			}
			if p.enabled {
				t.Error("expected publisher to be disabled")
			}
			if p.writer != nil {
				t.Error("expected nil writer when disabled")
			}
		})
	}
}

func TestNew_ConfigValues(t *testing.T) {
	cfg := &Config{
		Enabled:   false,
		Topic:     "chat.transcription.lifecycle",
		Principal: "svc-tracker",
	}

	p := New(cfg)
	if p.topic != "chat.transcription.lifecycle" {
		t.Errorf("expected topic carried over, got %s", p.topic)
	}
	if p.principal != "svc-tracker" {
		t.Errorf("expected principal carried over, got %s", p.principal)
	}
}

func TestPublishLifecycle_DisabledIsLogOnly(t *testing.T) {
	p := New(&Config{Enabled: false, Topic: "test-topic"})

	event := models.OperationEvent{
		EventType:   models.EventOperationCompleted,
		OperationID: "op-1",
		ChatID:      "chat-1",
		Timestamp:   1700000000000,
		Attempts:    3,
	}

	// Log-only mode must not attempt a broker write or return an error.
	if err := p.PublishLifecycle(context.Background(), event); err != nil {
		t.Errorf("unexpected error in log-only mode: %v", err)
	}
}

func TestPublishLifecycle_DisabledDoesNotCountAsPublished(t *testing.T) {
	p := New(&Config{Enabled: false, Topic: "test-topic"})

	counter := metrics.DefaultMetrics.KafkaPublishTotal.
		WithLabelValues("test-topic", models.EventOperationCompleted)
	before := testutil.ToFloat64(counter)

	event := models.OperationEvent{
		EventType:   models.EventOperationCompleted,
		OperationID: "op-1",
	}
	if err := p.PublishLifecycle(context.Background(), event); err != nil {
		t.Fatalf("unexpected error in log-only mode: %v", err)
	}

	if after := testutil.ToFloat64(counter); after != before {
		t.Errorf("log-only publish incremented kafka_publish_total from %v to %v", before, after)
	}
}

func TestReady(t *testing.T) {
	disabled := New(&Config{Enabled: false, Topic: "test-topic"})
	if err := disabled.Ready(); err != nil {
		t.Errorf("expected disabled publisher to report ready, got %v", err)
	}
	disabled.Close()
	if err := disabled.Ready(); err != nil {
		t.Errorf("expected closed log-only publisher to stay ready, got %v", err)
	}

	// The writer does not dial until the first write, so an enabled
	// publisher is safe to construct and close without a broker.
	enabled := New(&Config{Enabled: true, Brokers: []string{"127.0.0.1:9092"}, Topic: "test-topic"})
	if err := enabled.Ready(); err != nil {
		t.Errorf("expected enabled publisher to report ready, got %v", err)
	}
	enabled.Close()
	if err := enabled.Ready(); err == nil {
		t.Error("expected closed publisher to report not ready")
	}
}

func TestClose_DisabledPublisher(t *testing.T) {
	p := New(nil)
	if err := p.Close(); err != nil {
		t.Errorf("unexpected error closing disabled publisher: %v", err)
	}
}
