package core

import (
	"time"
)

// HoldRequestExpiredEventType is the event type identifier.
const HoldRequestExpiredEventType = "HoldRequestExpired"

// HoldRequestExpired represents a hold request dropped from the queue after the expiry period.
type HoldRequestExpired struct {
	EventType   EventTypeString
	BookID      BookIDString
	BorrowerID  BorrowerIDString
	RequestedAt time.Time
	OccurredAt  OccurredAtTS
}

// BuildHoldRequestExpired creates a new HoldRequestExpired event.
func BuildHoldRequestExpired(hr *HoldRequest, occurredAt time.Time) HoldRequestExpired {
	return HoldRequestExpired{
		EventType:   HoldRequestExpiredEventType,
		BookID:      hr.Book.ID.String(),
		BorrowerID:  hr.Borrower.ID.String(),
		RequestedAt: ToOccurredAt(hr.RequestedAt),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e HoldRequestExpired) IsEventType() string {
	return HoldRequestExpiredEventType
}

func (e HoldRequestExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e HoldRequestExpired) IsErrorEvent() bool {
	return false
}
