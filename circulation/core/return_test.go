package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

func Test_Return_WithinLoanPeriodOwesNothing(t *testing.T) {
	// arrange
	f := givenFixture()
	alice := f.borrower("Alice")
	loan := f.issue(t, alice, f.fakeClock)

	// act
	decision := f.returnBook(t, alice, loan, f.fakeClock.Add(3*24*time.Hour), false)

	// assert
	assert.False(t, decision.FineOwed())
	assert.Empty(t, decision.Question)
	assert.True(t, loan.IsReturned())
	assert.Same(t, f.staff, loan.ReceivedBy)
	assert.False(t, loan.FinePaid)
	assert.Empty(t, alice.Loans())
	assert.Zero(t, alice.OutstandingFine())
	assert.Equal(t, core.StatusAvailable, f.book.Status())
	assertQueueEmptyUnlessIssued(t, f.book)
}

func Test_Return_OverdueFinePaidNow(t *testing.T) {
	// arrange
	f := givenFixture()
	alice := f.borrower("Alice")
	loan := f.issue(t, alice, f.fakeClock)

	// act
	decision := f.returnBook(t, alice, loan, f.fakeClock.Add(30*24*time.Hour), true)

	// assert
	assert.True(t, decision.FineOwed())
	assert.Equal(t, 16, decision.DaysOverdue)
	assert.NotEmpty(t, decision.Question)
	assert.True(t, loan.FinePaid)
	assert.InDelta(t, 16.0, float64(loan.Fine), 0.0001)
	assert.Zero(t, alice.OutstandingFine())
}

func Test_Return_OverdueFineNotPaidStaysOutstanding(t *testing.T) {
	// arrange
	f := givenFixture()
	alice := f.borrower("Alice")
	loan := f.issue(t, alice, f.fakeClock)

	// act
	f.returnBook(t, alice, loan, f.fakeClock.Add(30*24*time.Hour), false)

	// assert
	assert.False(t, loan.FinePaid)
	assert.InDelta(t, 16.0, float64(alice.OutstandingFine()), 0.0001)
}

func Test_Return_WrongBorrowerChangesNothing(t *testing.T) {
	// arrange
	f := givenFixture()
	alice, mallory := f.borrower("Alice"), f.borrower("Mallory")
	loan := f.issue(t, alice, f.fakeClock)

	// act
	_, err := f.book.DecideReturn(mallory, loan, core.DefaultLendingPolicy(), f.fakeClock.Add(time.Hour))

	// assert
	assert.ErrorIs(t, err, core.ErrPreconditionViolation)
	assert.Contains(t, err.Error(), "wrong borrower for this loan")
	assert.False(t, loan.IsReturned())
	assert.Equal(t, []*core.Loan{loan}, alice.Loans())
	assert.Equal(t, core.StatusIssued, f.book.Status())
}

func Test_Return_RejectsReturnedLoanAndLoanOfOtherBook(t *testing.T) {
	// arrange
	f := givenFixture()
	alice := f.borrower("Alice")
	loan := f.issue(t, alice, f.fakeClock)
	f.returnBook(t, alice, loan, f.fakeClock.Add(time.Hour), false)
	otherBook := core.NewBook(f.ids, "Emma", "Fiction", "Jane Austen")

	// act
	_, errAgain := f.book.DecideReturn(alice, loan, core.DefaultLendingPolicy(), f.fakeClock.Add(2*time.Hour))
	_, errOtherBook := otherBook.DecideReturn(alice, loan, core.DefaultLendingPolicy(), f.fakeClock.Add(2*time.Hour))

	// assert
	assert.ErrorIs(t, errAgain, core.ErrPreconditionViolation)
	assert.ErrorIs(t, errOtherBook, core.ErrPreconditionViolation)
}

func Test_Return_RequiresBorrowerAndLoan(t *testing.T) {
	f := givenFixture()
	alice := f.borrower("Alice")
	loan := f.issue(t, alice, f.fakeClock)

	_, errNoBorrower := f.book.DecideReturn(nil, loan, core.DefaultLendingPolicy(), f.fakeClock)
	_, errNoLoan := f.book.DecideReturn(alice, nil, core.DefaultLendingPolicy(), f.fakeClock)

	assert.ErrorIs(t, errNoBorrower, core.ErrInvalidArgument)
	assert.ErrorIs(t, errNoLoan, core.ErrInvalidArgument)
}

func Test_Return_WithPendingHoldsKeepsBookHeld(t *testing.T) {
	// arrange
	f := givenFixture()
	alice, carol := f.borrower("Alice"), f.borrower("Carol")
	loan := f.issue(t, alice, f.fakeClock)
	f.placeHold(t, carol, f.fakeClock.Add(time.Minute))

	// act
	f.returnBook(t, alice, loan, f.fakeClock.Add(time.Hour), false)

	// assert
	assert.Equal(t, core.StatusHeld, f.book.Status())
	assert.True(t, f.book.IsIssued())
	_, hasLoan := f.book.CurrentLoan()
	assert.False(t, hasLoan)
	assertQueueEmptyUnlessIssued(t, f.book)
}

func Test_ApplyReturn_CannotCloseLoanTwice(t *testing.T) {
	// arrange
	f := givenFixture()
	alice := f.borrower("Alice")
	loan := f.issue(t, alice, f.fakeClock)
	decision, err := f.book.DecideReturn(alice, loan, core.DefaultLendingPolicy(), f.fakeClock.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, f.book.ApplyReturn(decision, f.staff, false))

	// act
	err = f.book.ApplyReturn(decision, f.staff, false)

	// assert
	assert.ErrorIs(t, err, core.ErrPreconditionViolation)
}
