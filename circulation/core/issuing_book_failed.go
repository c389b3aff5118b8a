package core

import (
	"time"
)

// IssuingBookFailedEventType is the event type identifier.
const IssuingBookFailedEventType = "IssuingBookFailed"

// IssuingBookFailed represents an issue attempt that was refused.
type IssuingBookFailed struct {
	EventType   EventTypeString
	BookID      BookIDString
	BorrowerID  BorrowerIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildIssuingBookFailed creates a new IssuingBookFailed event.
func BuildIssuingBookFailed(bookID, borrowerID ID, failureInfo string, occurredAt time.Time) IssuingBookFailed {
	return IssuingBookFailed{
		EventType:   IssuingBookFailedEventType,
		BookID:      bookID.String(),
		BorrowerID:  borrowerID.String(),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e IssuingBookFailed) IsEventType() string {
	return IssuingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e IssuingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a refused operation.
func (e IssuingBookFailed) IsErrorEvent() bool {
	return true
}
