package returnbook

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// Decide turns a checked return into the event to record.
// finePaid is the borrower's answer to the fine question and only counts when a fine is owed.
//
// Business Rules:
//
//	GIVEN: an open loan of the book, returned by its borrower
//	WHEN: ReturnBook is received
//	THEN: BookReturnedByBorrower with days overdue, fine and whether it was paid
func Decide(decision core.ReturnDecision, receivedBy *core.Staff, finePaid bool, command Command) core.DecisionResult {
	return core.SuccessDecision(core.BuildBookReturnedByBorrower(decision, receivedBy, finePaid, command.OccurredAt))
}

// DecideFailure records why a return was refused and surfaces err to the caller.
//
//	ERROR: ReturningBookFailed if the loan is not open for this book or belongs to another borrower
func DecideFailure(borrowerID core.ID, err error, command Command) core.DecisionResult {
	event := core.BuildReturningBookFailed(command.BookID, borrowerID, command.LoanID, err.Error(), command.OccurredAt)

	return core.ErrorDecision(event, err)
}
