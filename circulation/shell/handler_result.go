package shell

import "time"

// HandlerResult represents the outcome of a command handler execution.
// It captures the business outcome and retry metadata without coupling the handler
// to specific observability implementations.
type HandlerResult struct {
	// Outcome is StatusSuccess, StatusIdempotent or StatusRejected.
	// A rejection is an expected answer of the circulation rules, like "you have to wait".
	Outcome string

	// RetryAttempts is the total number of journal append attempts (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// IsIdempotent reports whether nothing had to change.
func (r HandlerResult) IsIdempotent() bool {
	return r.Outcome == StatusIdempotent
}

// IsRejected reports whether the circulation rules refused the request.
func (r HandlerResult) IsRejected() bool {
	return r.Outcome == StatusRejected
}

// NewSuccessResult creates a HandlerResult for operations that changed state.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(StatusSuccess, retryMetrics)
}

// NewIdempotentResult creates a HandlerResult for operations that changed nothing.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(StatusIdempotent, retryMetrics)
}

// NewRejectedResult creates a HandlerResult for requests refused by the circulation rules.
func NewRejectedResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(StatusRejected, retryMetrics)
}

// NewErrorResult creates a HandlerResult for failed operations.
// This is used when the handler returns an error but still wants to report retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(StatusError, retryMetrics)
}

func newHandlerResult(outcome string, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Outcome:          outcome,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
