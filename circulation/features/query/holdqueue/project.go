package holdqueue

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ProjectHoldQueue builds the query result from the current state of book.
// The caller must hold the book's lock.
func ProjectHoldQueue(book *core.Book, policy core.LendingPolicy, query Query) HoldQueue {
	requests := book.HoldRequests()

	result := HoldQueue{
		BookID:  book.ID.String(),
		Title:   book.Title(),
		Status:  book.Status().String(),
		Entries: make([]HoldEntry, 0, len(requests)),
		Count:   len(requests),
	}

	for i, hr := range requests {
		result.Entries = append(result.Entries, HoldEntry{
			Position:     i + 1,
			BorrowerID:   hr.Borrower.ID.String(),
			BorrowerName: hr.Borrower.Name,
			RequestedAt:  hr.RequestedAt,
			Expired:      policy.HoldRequestExpired(hr.RequestedAt, query.AsOf),
		})
	}

	return result
}
