package makeholdrequest

import (
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	failureReasonAlreadyOnLoan = "borrower has this book on loan"

	// MessagePlaced is displayed when the hold request joined the queue.
	MessagePlaced = "Your hold request has been placed."

	// MessageAlreadyOnLoan is displayed when the borrower has the book on loan.
	MessageAlreadyOnLoan = "You have this book on loan, so no hold request was placed."

	// MessageDuplicate is displayed when the borrower already waits for the book.
	MessageDuplicate = "You already have a hold request for this book."
)

// Decide determines whether borrower may place a hold request on book.
// It is a pure function, the book and the borrower stay untouched.
//
// Business Rules:
//
//	GIVEN: an issued book and a borrower
//	WHEN: MakeHoldRequest is received
//	THEN: HoldRequestPlaced is generated
//	REJECTED: PlacingHoldRequestFailed if the borrower has the book on loan
//	IDEMPOTENCY: no event if the borrower already has a hold request for the book
//	ERROR: PlacingHoldRequestFailed if the book is not issued
func Decide(book *core.Book, borrower *core.Borrower, command Command) core.DecisionResult {
	outcome, err := book.DecideHoldRequest(borrower)
	if err != nil {
		event := core.BuildPlacingHoldRequestFailed(command.BookID, command.BorrowerID, err.Error(), command.OccurredAt)
		return core.ErrorDecision(event, err)
	}

	switch outcome {
	case core.HoldRejectedAlreadyOnLoan:
		event := core.BuildPlacingHoldRequestFailed(command.BookID, command.BorrowerID, failureReasonAlreadyOnLoan, command.OccurredAt)
		return core.RejectedDecision(event)
	case core.HoldRejectedDuplicate:
		return core.IdempotentDecision()
	case core.HoldPlaced:
		return core.SuccessDecision(core.BuildHoldRequestPlaced(command.BookID, command.BorrowerID, command.OccurredAt))
	default:
		return core.ErrorDecision(nil, errors.New("unknown hold outcome "+outcome.String()))
	}
}

// MessageFor returns what the borrower is told about a decision, empty for errors.
func MessageFor(result core.DecisionResult) string {
	switch {
	case result.IsIdempotent():
		return MessageDuplicate
	case result.IsRejected():
		return MessageAlreadyOnLoan
	case result.HasError() != nil:
		return ""
	default:
		return MessagePlaced
	}
}
