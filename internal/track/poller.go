package track

import (
	"context"
	"time"

	"chat-transcription-tracker/internal/api/client"
	"chat-transcription-tracker/internal/config"
	"chat-transcription-tracker/internal/observability/logging"
	"chat-transcription-tracker/internal/observability/metrics"
)

// StatusFetcher is the injected status-fetch capability the poller issues
// requests through.
type StatusFetcher interface {
	// GetOperation fetches the operation's current status. Any returned
	// error (transport failure, non-2xx response) is treated as transient.
	GetOperation(ctx context.Context, operationID string) (*client.OperationStatus, error)
}

// OutcomeKind classifies the result of polling.
type OutcomeKind int

const (
	// OutcomePending - Operation not finished yet; exists only within a
	// single poll cycle.
	OutcomePending OutcomeKind = iota
	// OutcomeTransientError - Request failed; retried within the shared
	// attempt budget, never surfaced individually.
	OutcomeTransientError
	// OutcomeCompleted - Server reported the transcription finished.
	OutcomeCompleted
	// OutcomeFailed - Server reported the transcription failed.
	OutcomeFailed
	// OutcomeTimedOut - Attempt budget exhausted without a terminal status.
	OutcomeTimedOut
	// OutcomeCancelled - Context cancelled before a terminal state; no
	// terminal side effects may be committed after this is observed.
	OutcomeCancelled
)

// Outcome is the poller's result. Reason carries the user-visible message
// for OutcomeFailed and OutcomeTimedOut; Cause carries the last transient
// error or the cancellation cause.
type Outcome struct {
	Kind     OutcomeKind
	Reason   string
	Cause    error
	Attempts int
}

// Poller drives the bounded fixed-interval status poll loop for a single
// operation. One sequential task per invocation; suspension happens only
// at the status request and at the inter-attempt wait.
type Poller struct {
	fetcher     StatusFetcher
	interval    time.Duration
	maxAttempts int
	metrics     *metrics.Metrics
}

// NewPoller creates a poller bounded by the given interval and attempt cap.
func NewPoller(fetcher StatusFetcher, cfg config.PollConfig) *Poller {
	return &Poller{
		fetcher:     fetcher,
		interval:    cfg.Interval,
		maxAttempts: cfg.MaxAttempts,
		metrics:     metrics.DefaultMetrics,
	}
}

// Poll issues status requests until a terminal status arrives, the attempt
// budget is exhausted, or the context is cancelled. Pending statuses and
// transient errors consume the same budget. No conversation state is
// touched here; the caller applies the terminal outcome.
func (p *Poller) Poll(ctx context.Context, operationID string) Outcome {
	logger := logging.WithOperation(operationID)

	attempts := 0
	for attempts < p.maxAttempts {
		if err := ctx.Err(); err != nil {
			return Outcome{Kind: OutcomeCancelled, Cause: err, Attempts: attempts}
		}

		cycle := p.request(ctx, operationID)
		attempts++

		switch cycle.Kind {
		case OutcomeCompleted, OutcomeFailed:
			cycle.Attempts = attempts
			return cycle
		case OutcomeCancelled:
			cycle.Attempts = attempts
			return cycle
		case OutcomeTransientError:
			logger.Debug().Err(cycle.Cause).Int("attempt", attempts).Msg("Poll attempt failed, retrying")
		}

		if attempts >= p.maxAttempts {
			break
		}
		if err := p.wait(ctx); err != nil {
			return Outcome{Kind: OutcomeCancelled, Cause: err, Attempts: attempts}
		}
	}

	logger.Warn().Int("attempts", attempts).Msg("Poll attempt budget exhausted")
	return Outcome{Kind: OutcomeTimedOut, Reason: MsgTranscriptionTimedOut, Attempts: attempts}
}

// request performs one status request and classifies the response.
func (p *Poller) request(ctx context.Context, operationID string) Outcome {
	start := time.Now()
	st, err := p.fetcher.GetOperation(ctx, operationID)
	p.metrics.RecordPollAttempt(err, time.Since(start).Seconds())

	if err != nil {
		if ctx.Err() != nil {
			return Outcome{Kind: OutcomeCancelled, Cause: ctx.Err()}
		}
		return Outcome{Kind: OutcomeTransientError, Cause: err}
	}

	switch st.Status {
	case client.StatusCompleted:
		return Outcome{Kind: OutcomeCompleted}
	case client.StatusFailed:
		reason := st.Error
		if reason == "" {
			reason = MsgTranscriptionFailed
		}
		return Outcome{Kind: OutcomeFailed, Reason: reason}
	default:
		// Anything else, including an absent status, is still pending.
		return Outcome{Kind: OutcomePending}
	}
}

// wait suspends for the fixed interval, observing cancellation first.
func (p *Poller) wait(ctx context.Context) error {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
