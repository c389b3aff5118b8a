package core

import (
	"time"
)

// BookReturnedByBorrowerEventType is the event type identifier.
const BookReturnedByBorrowerEventType = "BookReturnedByBorrower"

// BookReturnedByBorrower represents a loan being closed, with the fine assessed at return.
type BookReturnedByBorrower struct {
	EventType   EventTypeString
	BookID      BookIDString
	BorrowerID  BorrowerIDString
	StaffID     StaffIDString
	LoanID      LoanIDString
	DaysOverdue int
	Fine        Money
	FinePaid    bool
	OccurredAt  OccurredAtTS
}

// BuildBookReturnedByBorrower creates a new BookReturnedByBorrower event.
func BuildBookReturnedByBorrower(
	decision ReturnDecision,
	receivedBy *Staff,
	finePaid bool,
	occurredAt time.Time,
) BookReturnedByBorrower {
	return BookReturnedByBorrower{
		EventType:   BookReturnedByBorrowerEventType,
		BookID:      decision.Loan.Book.ID.String(),
		BorrowerID:  decision.Loan.Borrower.ID.String(),
		StaffID:     staffIDString(receivedBy),
		LoanID:      decision.Loan.ID.String(),
		DaysOverdue: decision.DaysOverdue,
		Fine:        decision.Fine,
		FinePaid:    decision.FineOwed() && finePaid,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturnedByBorrower) IsEventType() string {
	return BookReturnedByBorrowerEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByBorrower) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturnedByBorrower) IsErrorEvent() bool {
	return false
}
