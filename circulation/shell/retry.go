package shell

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/journal"
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

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")

	// ErrNilMetricsCollector is returned when a nil metrics collector is provided to WithRetryMetrics.
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")

	// ErrEmptyCommandType is returned when an empty command type is provided to WithRetryMetrics.
	ErrEmptyCommandType = errors.New("command type must not be empty")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

// RetryMetrics describes what happened during RetryWithExponentialBackoff.
type RetryMetrics struct {
	Attempts         int
	TotalDelay       time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

// Merge combines the metrics of two journal writes made by the same command.
// The retries of both are counted, the last error type is the one of other.
func (m RetryMetrics) Merge(other RetryMetrics) RetryMetrics {
	switch {
	case other.Attempts == 0:
		return m
	case m.Attempts == 0:
		return other
	}

	return RetryMetrics{
		Attempts:         m.Attempts + other.Attempts - 1,
		TotalDelay:       m.TotalDelay + other.TotalDelay,
		LastErrorType:    other.LastErrorType,
		RetriesExhausted: m.RetriesExhausted || other.RetriesExhausted,
	}
}

type retryConfig struct {
	maxAttempts      int
	baseDelay        time.Duration
	jitterFactor     float64
	metricsCollector MetricsCollector
	commandType      string
}

// RetryWithExponentialBackoff executes fn and retries it on journal concurrency conflicts.
// All other errors fail fast.
//
// Retry Schedule (default): 0 ms, 10 ms, 20 ms, 40 ms, 80 ms, 160 ms (with 30% jitter)
//
// Conflicts only happen when several processes share a PostgreSQL journal, since in-process
// operations on a book are serialized by the catalog.
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

	for _, option := range options {
		if err := option(config); err != nil {
			return RetryMetrics{LastErrorType: getErrorType(err)}, err
		}
	}

	metrics := RetryMetrics{}
	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: baseDelay * 2^(attempt-1)
			delay := config.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * config.jitterFactor //nolint:gosec //math/rand is sufficient for jitter
			backoffDelay := delay + time.Duration(jitter)

			recordRetryDelayMetric(ctx, config, attempt, backoffDelay)

			select {
			case <-time.After(backoffDelay):
				metrics.TotalDelay += backoffDelay
			case <-ctx.Done():
				metrics.LastErrorType = getErrorType(ctx.Err())
				return metrics, ctx.Err()
			}
		}

		metrics.Attempts++
		lastErr = fn(ctx)
		metrics.LastErrorType = getErrorType(lastErr)

		if lastErr == nil {
			return metrics, nil
		}

		if !isRetryableError(lastErr) {
			return metrics, lastErr
		}

		recordRetryAttemptMetric(ctx, attempt, config, lastErr)
	}

	metrics.RetriesExhausted = true
	recordMaxRetriesReachedMetric(ctx, config, lastErr)

	return metrics, lastErr
}

func recordRetryDelayMetric(ctx context.Context, config *retryConfig, attempt int, backoffDelay time.Duration) {
	if config.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		LogAttrCommandType: config.commandType,
		"attempt_number":   strconv.Itoa(attempt),
	}

	if contextualCollector, ok := config.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, CommandHandlerRetryDelayMetric, backoffDelay, labels)
	} else {
		config.metricsCollector.RecordDuration(CommandHandlerRetryDelayMetric, backoffDelay, labels)
	}
}

// recordRetryAttemptMetric only counts attempts that will actually be retried.
func recordRetryAttemptMetric(ctx context.Context, attempt int, config *retryConfig, lastErr error) {
	if attempt >= config.maxAttempts-1 || config.metricsCollector == nil {
		return
	}

	labels := BuildRetryLabels(config.commandType, attempt+1, getErrorType(lastErr))

	if contextualCollector, ok := config.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, CommandHandlerRetriesMetric, labels)
	} else {
		config.metricsCollector.IncrementCounter(CommandHandlerRetriesMetric, labels)
	}
}

func recordMaxRetriesReachedMetric(ctx context.Context, config *retryConfig, lastErr error) {
	if config.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		LogAttrCommandType: config.commandType,
		"final_error_type": getErrorType(lastErr),
	}

	if contextualCollector, ok := config.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, CommandHandlerMaxRetriesReachedMetric, labels)
	} else {
		config.metricsCollector.IncrementCounter(CommandHandlerMaxRetriesReachedMetric, labels)
	}
}

// isRetryableError determines if an error should be retried.
// Only concurrency conflicts are retried; timeouts fail fast.
func isRetryableError(err error) bool {
	return errors.Is(err, journal.ErrConcurrencyConflict)
}

func getErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, journal.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	default:
		return "other"
	}
}

// RetryOption configures retry behavior using the functional options pattern.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of attempts.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, baseDelay*8, etc.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter as a fraction of the backoff delay, between 0.0 and 1.0.
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// WithRetryMetrics enables retry metrics labeled with commandType.
func WithRetryMetrics(collector MetricsCollector, commandType string) RetryOption {
	return func(config *retryConfig) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		if commandType == "" {
			return ErrEmptyCommandType
		}

		config.metricsCollector = collector
		config.commandType = commandType

		return nil
	}
}
