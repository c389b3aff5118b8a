package loanhistory

import (
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// ProjectLoanHistory implements the query logic. It is a pure function over the domain events.
//
// Query Logic:
//
//	GIVEN: a borrower with BorrowerID
//	WHEN: LoanHistory is executed
//	THEN: every loan issued to the borrower, open or returned
//	INCLUDES: fine details of returned loans
func ProjectLoanHistory(history core.DomainEvents, query Query, maxSequenceNumber journal.MaxSequenceNumberUint) LoanHistory {
	borrowerID := query.BorrowerID.String()
	loans := make(map[core.LoanIDString]*LoanEntry)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookIssuedToBorrower:
			if e.BorrowerID != borrowerID {
				continue
			}

			loans[e.LoanID] = &LoanEntry{
				LoanID:   e.LoanID,
				BookID:   e.BookID,
				IssuedBy: e.StaffID,
				IssuedAt: e.OccurredAt,
				FromHold: e.FromHold,
			}

		case core.BookReturnedByBorrower:
			entry, ok := loans[e.LoanID]
			if !ok || e.BorrowerID != borrowerID {
				continue
			}

			entry.Returned = true
			entry.ReturnedAt = e.OccurredAt
			entry.ReceivedBy = e.StaffID
			entry.DaysOverdue = e.DaysOverdue
			entry.Fine = e.Fine
			entry.FinePaid = e.FinePaid
		}
	}

	result := LoanHistory{
		BorrowerID:     borrowerID,
		Loans:          make([]LoanEntry, 0, len(loans)),
		SequenceNumber: maxSequenceNumber,
	}

	for _, entry := range loans {
		result.Loans = append(result.Loans, *entry)

		if !entry.Returned {
			result.OpenCount++
		}

		if entry.Fine > 0 && !entry.FinePaid {
			result.UnpaidFines += entry.Fine
		}
	}

	slices.SortFunc(result.Loans, func(a, b LoanEntry) int {
		if c := a.IssuedAt.Compare(b.IssuedAt); c != 0 {
			return c
		}

		return compareIDs(a.LoanID, b.LoanID)
	})

	result.Count = len(result.Loans)

	return result
}

// BuildEventFilter creates the filter for the loan events of the specified borrower.
func BuildEventFilter(borrowerID core.ID) journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookIssuedToBorrowerEventType,
			core.BookReturnedByBorrowerEventType,
		).
		AndAnyPredicateOf(
			journal.P("BorrowerID", borrowerID.String()),
		).
		Finalize()
}

func compareIDs(a, b string) int {
	idA, errA := core.ParseID(a)
	idB, errB := core.ParseID(b)

	if errA != nil || errB != nil {
		return 0
	}

	switch {
	case idA < idB:
		return -1
	case idA > idB:
		return 1
	default:
		return 0
	}
}
