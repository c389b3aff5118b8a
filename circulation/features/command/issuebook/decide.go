package issuebook

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	failureReasonBookIssued = "book is issued"
)

// Decide turns an issue decision into the event to record.
// loan is the loan allocated for decisions that issue one, nil otherwise.
//
// Business Rules:
//
//	GIVEN: an issue decision of the book for the borrower
//	WHEN: IssueBook is received
//	THEN: BookIssuedToBorrower for an available book, or for a held book and its earliest holder
//	REJECTED: IssuingBookFailed if the book is issued, the borrower may then place a hold request
//	REJECTED: IssuingBookFailed with the wait message if others are first in line
func Decide(decision core.IssueDecision, loan *core.Loan, command Command) core.DecisionResult {
	switch decision.Outcome {
	case core.IssueNow, core.IssueToEarliestHolder:
		if loan == nil {
			err := core.NewOpError("issue book", core.ErrInvalidArgument, "loan is missing")
			return core.ErrorDecision(core.BuildIssuingBookFailed(command.BookID, command.BorrowerID, err.Error(), command.OccurredAt), err)
		}

		fromHold := decision.Outcome == core.IssueToEarliestHolder

		return core.SuccessDecision(core.BuildBookIssuedToBorrower(loan, fromHold, command.OccurredAt))

	case core.IssueOfferHold:
		return core.RejectedDecision(
			core.BuildIssuingBookFailed(command.BookID, command.BorrowerID, failureReasonBookIssued, command.OccurredAt),
		)

	default:
		return core.RejectedDecision(
			core.BuildIssuingBookFailed(command.BookID, command.BorrowerID, decision.Message, command.OccurredAt),
		)
	}
}
