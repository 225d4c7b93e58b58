// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chat_transcription_tracker"

// Metrics holds all Prometheus metrics for the tracker.
type Metrics struct {
	// Operation metrics
	OperationsTracked  prometheus.Counter
	OperationsActive   prometheus.Gauge
	OperationsTerminal *prometheus.CounterVec
	TrackDuration      prometheus.Histogram

	// Poll metrics
	PollAttempts        prometheus.Counter
	PollTransientErrors prometheus.Counter
	PollLatency         prometheus.Histogram

	// Conversation metrics
	ChatsCreated     prometheus.Counter
	ChatCreateErrors prometheus.Counter

	// Configuration metrics
	ConfigurationErrors prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		// Operation metrics
		OperationsTracked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_tracked_total",
			Help:      "Total number of transcription operations tracked",
		}),
		OperationsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operations_active",
			Help:      "Number of transcription operations currently being polled",
		}),
		OperationsTerminal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_terminal_total",
			Help:      "Total number of operations reaching a terminal state",
		}, []string{"result"}),
		TrackDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "track_duration_seconds",
			Help:      "Time from tracking start to terminal state in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),

		// Poll metrics
		PollAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_attempts_total",
			Help:      "Total number of status poll requests issued",
		}),
		PollTransientErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_transient_errors_total",
			Help:      "Total number of poll attempts that failed transiently",
		}),
		PollLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_latency_seconds",
			Help:      "Status request latency in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		// Conversation metrics
		ChatsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chats_created_total",
			Help:      "Total number of conversations created for tracked operations",
		}),
		ChatCreateErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_create_errors_total",
			Help:      "Total number of conversation creation failures",
		}),

		// Configuration metrics
		ConfigurationErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "configuration_errors_total",
			Help:      "Total number of tracking attempts aborted because no skill resolved",
		}),

		// Kafka publish metrics
		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordOperationStart records an operation entering tracking.
func (m *Metrics) RecordOperationStart() {
	m.OperationsTracked.Inc()
	m.OperationsActive.Inc()
}

// RecordOperationEnd records an operation reaching a terminal state.
func (m *Metrics) RecordOperationEnd(result string, durationSeconds float64) {
	m.OperationsActive.Dec()
	m.OperationsTerminal.WithLabelValues(result).Inc()
	m.TrackDuration.Observe(durationSeconds)
}

// RecordPollAttempt records one status poll request.
func (m *Metrics) RecordPollAttempt(err error, latencySeconds float64) {
	m.PollAttempts.Inc()
	m.PollLatency.Observe(latencySeconds)
	if err != nil {
		m.PollTransientErrors.Inc()
	}
}

// RecordChatCreated records a conversation creation attempt.
func (m *Metrics) RecordChatCreated(err error) {
	if err != nil {
		m.ChatCreateErrors.Inc()
		return
	}
	m.ChatsCreated.Inc()
}

// RecordConfigurationError records a tracking attempt aborted for lack of a skill.
func (m *Metrics) RecordConfigurationError() {
	m.ConfigurationErrors.Inc()
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
