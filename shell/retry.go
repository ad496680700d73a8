package shell

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"exlibris/eventstore"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

// RetryOption configures the retry behavior.
type RetryOption func(*retryConfig) error

type retryConfig struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
}

// WithMaxAttempts overrides the default number of attempts.
func WithMaxAttempts(maxAttempts int) RetryOption {
	return func(c *retryConfig) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		c.maxAttempts = maxAttempts
		return nil
	}
}

// WithBaseDelay overrides the default base delay of the backoff schedule.
func WithBaseDelay(baseDelay time.Duration) RetryOption {
	return func(c *retryConfig) error {
		if baseDelay < 0 {
			return ErrNegativeBaseDelay
		}

		c.baseDelay = baseDelay
		return nil
	}
}

// RetryMetrics captures execution metadata of a retried operation.
type RetryMetrics struct {
	Attempts         int
	TotalDelay       time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

// RetryWithExponentialBackoff implements optimistic concurrency retry logic.
// Only eventstore.ErrConcurrencyConflict is retried - all other errors fail fast.
//
// Retry schedule (default): 0 ms, 10 ms, 20 ms, 40 ms, 80 ms, 160 ms with 30% jitter.
func RetryWithExponentialBackoff(
	ctx context.Context,
	fn RetryableFunc,
	options ...RetryOption,
) (RetryMetrics, error) {

	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	metrics := RetryMetrics{LastErrorType: "none"}

	for _, option := range options {
		if err := option(config); err != nil {
			return metrics, err
		}
	}

	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			// exponential backoff: baseDelay * 2^(attempt-1)
			delay := config.baseDelay * time.Duration(1<<(attempt-1))

			// jitter prevents a thundering herd of conflicting retries
			jitter := time.Duration(rand.Float64() * float64(delay) * config.jitterFactor) //nolint:gosec // math/rand is sufficient for jitter
			backoffDelay := delay + jitter
			metrics.TotalDelay += backoffDelay

			select {
			case <-time.After(backoffDelay):
			case <-ctx.Done():
				metrics.LastErrorType = errorTypeOf(ctx.Err())
				return metrics, ctx.Err()
			}
		}

		metrics.Attempts = attempt + 1

		lastErr = fn(ctx)
		if lastErr == nil {
			metrics.LastErrorType = "none"
			return metrics, nil
		}

		metrics.LastErrorType = errorTypeOf(lastErr)

		if !errors.Is(lastErr, eventstore.ErrConcurrencyConflict) {
			return metrics, lastErr
		}
	}

	metrics.RetriesExhausted = true

	return metrics, lastErr
}

func errorTypeOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	default:
		return "other"
	}
}
