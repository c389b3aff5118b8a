package core

import (
	"time"
)

// ReturningBookFailedEventType is the event type identifier.
const ReturningBookFailedEventType = "ReturningBookFailed"

// ReturningBookFailed represents a return attempt that violated a precondition.
type ReturningBookFailed struct {
	EventType   EventTypeString
	BookID      BookIDString
	BorrowerID  BorrowerIDString
	LoanID      LoanIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildReturningBookFailed creates a new ReturningBookFailed event.
func BuildReturningBookFailed(bookID, borrowerID, loanID ID, failureInfo string, occurredAt time.Time) ReturningBookFailed {
	return ReturningBookFailed{
		EventType:   ReturningBookFailedEventType,
		BookID:      bookID.String(),
		BorrowerID:  borrowerID.String(),
		LoanID:      loanID.String(),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReturningBookFailed) IsEventType() string {
	return ReturningBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReturningBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e ReturningBookFailed) IsErrorEvent() bool {
	return true
}
