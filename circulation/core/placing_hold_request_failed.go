package core

import (
	"time"
)

// PlacingHoldRequestFailedEventType is the event type identifier.
const PlacingHoldRequestFailedEventType = "PlacingHoldRequestFailed"

// PlacingHoldRequestFailed represents a hold request that was refused.
type PlacingHoldRequestFailed struct {
	EventType   EventTypeString
	BookID      BookIDString
	BorrowerID  BorrowerIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildPlacingHoldRequestFailed creates a new PlacingHoldRequestFailed event.
func BuildPlacingHoldRequestFailed(bookID, borrowerID ID, failureInfo string, occurredAt time.Time) PlacingHoldRequestFailed {
	return PlacingHoldRequestFailed{
		EventType:   PlacingHoldRequestFailedEventType,
		BookID:      bookID.String(),
		BorrowerID:  borrowerID.String(),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e PlacingHoldRequestFailed) IsEventType() string {
	return PlacingHoldRequestFailedEventType
}

func (e PlacingHoldRequestFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e PlacingHoldRequestFailed) IsErrorEvent() bool {
	return true
}
