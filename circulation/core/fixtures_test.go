package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

type fixture struct {
	ids       *core.IDAllocator
	staff     *core.Staff
	book      *core.Book
	fakeClock time.Time
}

func givenFixture() *fixture {
	ids := core.NewIDAllocator()

	return &fixture{
		ids:       ids,
		staff:     core.NewStaff(ids, "Clerk", "Main St 1", "E-001", 2500),
		book:      core.NewBook(ids, "Dune", "Science Fiction", "Frank Herbert"),
		fakeClock: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) borrower(name string) *core.Borrower {
	return core.NewBorrower(f.ids, name, name+" Street 1")
}

// issue runs the decide/apply cycle for an issue that is expected to create a loan.
func (f *fixture) issue(t *testing.T, borrower *core.Borrower, at time.Time) *core.Loan {
	t.Helper()

	decision, err := f.book.DecideIssue(borrower)
	require.NoError(t, err)
	require.True(t, decision.IssuesLoan(), "expected a loan, got %s", decision.Outcome)

	loan := core.NewLoan(f.ids, borrower, f.book, f.staff, at)
	require.NoError(t, f.book.ApplyIssue(decision, loan))

	return loan
}

func (f *fixture) placeHold(t *testing.T, borrower *core.Borrower, at time.Time) *core.HoldRequest {
	t.Helper()

	outcome, hr, err := f.book.MakeHoldRequest(borrower, at)
	require.NoError(t, err)
	require.Equal(t, core.HoldPlaced, outcome)

	return hr
}

func (f *fixture) returnBook(t *testing.T, borrower *core.Borrower, loan *core.Loan, at time.Time, finePaid bool) core.ReturnDecision {
	t.Helper()

	decision, err := f.book.DecideReturn(borrower, loan, core.DefaultLendingPolicy(), at)
	require.NoError(t, err)
	require.NoError(t, f.book.ApplyReturn(decision, f.staff, finePaid))

	return decision
}

func assertQueueEmptyUnlessIssued(t *testing.T, book *core.Book) {
	t.Helper()

	if !book.IsIssued() {
		assert.Empty(t, book.HoldRequests(), "a book that is not issued must not have hold requests")
	}
}

func assertNoLoanAndHoldForSameBook(t *testing.T, borrower *core.Borrower, book *core.Book) {
	t.Helper()

	assert.False(t, borrower.HasActiveLoanFor(book) && borrower.HasHoldRequestFor(book),
		"borrower %s has a loan and a hold request for the same book", borrower.Name)
}
