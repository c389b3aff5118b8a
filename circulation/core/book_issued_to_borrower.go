package core

import (
	"time"
)

// BookIssuedToBorrowerEventType is the event type identifier.
const BookIssuedToBorrowerEventType = "BookIssuedToBorrower"

// BookIssuedToBorrower represents a loan being created.
type BookIssuedToBorrower struct {
	EventType  EventTypeString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	StaffID    StaffIDString
	LoanID     LoanIDString
	FromHold   bool
	OccurredAt OccurredAtTS
}

// BuildBookIssuedToBorrower creates a new BookIssuedToBorrower event.
// fromHold marks an issue to the borrower who was first in the book's hold queue.
func BuildBookIssuedToBorrower(loan *Loan, fromHold bool, occurredAt time.Time) BookIssuedToBorrower {
	return BookIssuedToBorrower{
		EventType:  BookIssuedToBorrowerEventType,
		BookID:     loan.Book.ID.String(),
		BorrowerID: loan.Borrower.ID.String(),
		StaffID:    staffIDString(loan.IssuedBy),
		LoanID:     loan.ID.String(),
		FromHold:   fromHold,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookIssuedToBorrower) IsEventType() string {
	return BookIssuedToBorrowerEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookIssuedToBorrower) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookIssuedToBorrower) IsErrorEvent() bool {
	return false
}

func staffIDString(staff *Staff) StaffIDString {
	if staff == nil {
		return ""
	}

	return staff.ID.String()
}
