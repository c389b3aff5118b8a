package core

import (
	"time"
)

// HoldRequestPlacedEventType is the event type identifier.
const HoldRequestPlacedEventType = "HoldRequestPlaced"

// HoldRequestPlaced represents a borrower joining a book's hold queue.
type HoldRequestPlaced struct {
	EventType  EventTypeString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildHoldRequestPlaced creates a new HoldRequestPlaced event.
func BuildHoldRequestPlaced(bookID, borrowerID ID, occurredAt time.Time) HoldRequestPlaced {
	return HoldRequestPlaced{
		EventType:  HoldRequestPlacedEventType,
		BookID:     bookID.String(),
		BorrowerID: borrowerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e HoldRequestPlaced) IsEventType() string {
	return HoldRequestPlacedEventType
}

func (e HoldRequestPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e HoldRequestPlaced) IsErrorEvent() bool {
	return false
}
