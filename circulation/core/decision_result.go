package core

// DecisionResult is what a feature's Decide function hands to its command handler:
// whether there is an event to record and whether the caller gets an error.
//
// Use the factory functions below, don't construct it directly.
type DecisionResult struct {
	Outcome string      // "idempotent", "success", "rejected" or "error"
	Event   DomainEvent // nil for idempotent decisions
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	rejectedOutcome   = "rejected"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating nothing has to change or be recorded.
func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: idempotentOutcome}
}

// SuccessDecision creates a DecisionResult for a state change described by event.
func SuccessDecision(event DomainEvent) DecisionResult {
	return DecisionResult{Outcome: successOutcome, Event: event}
}

// RejectedDecision creates a DecisionResult for a refusal that is a normal part of the
// interactive flow. The failure event is recorded but the caller gets no error.
func RejectedDecision(event DomainEvent) DecisionResult {
	return DecisionResult{Outcome: rejectedOutcome, Event: event}
}

// ErrorDecision creates a DecisionResult for a business rule violation that is surfaced
// to the caller as err, with a failure event to record.
func ErrorDecision(event DomainEvent, err error) DecisionResult {
	return DecisionResult{Outcome: errorOutcome, Event: event, Err: err}
}

// HasEventToAppend returns true if there is an event to record in the journal.
func (r DecisionResult) HasEventToAppend() bool {
	return r.Event != nil
}

// IsSuccess reports whether the decision changes state.
func (r DecisionResult) IsSuccess() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent reports whether the decision leaves everything unchanged without a refusal.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// IsRejected reports whether the decision is a refusal without an error.
func (r DecisionResult) IsRejected() bool {
	return r.Outcome == rejectedOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
