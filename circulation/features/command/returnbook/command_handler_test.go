package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_ReturnWithinLoanPeriod(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	loan := library.GivenLoan(t, book, alice, library.FakeClock)
	returnedAt := library.FakeClock.AddDate(0, 0, 14)

	prompter := NewScriptedPrompter()
	handler := returnbook.NewCommandHandler(library.Registry, library.Journal, prompter)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand(book.ID, loan.ID, library.Staff.ID, returnedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, shell.StatusSuccess, result.Outcome)
	assert.True(t, loan.IsReturned())
	assert.Equal(t, returnedAt, loan.ReturnedAt)
	assert.Same(t, library.Staff, loan.ReceivedBy)
	assert.Empty(t, alice.Loans())
	assert.Equal(t, core.StatusAvailable, book.Status())
	assert.Empty(t, prompter.Questions())
	assert.Equal(t, []string{`"Dune" has been returned.`}, prompter.Displayed())

	events := library.RecordedEvents(t, book.ID)
	require.Len(t, events, 1)
	returned, ok := events[0].(core.BookReturnedByBorrower)
	require.True(t, ok)
	assert.Equal(t, loan.ID.String(), returned.LoanID)
	assert.Zero(t, returned.Fine)
	library.AssertCirculationInvariants(t, book)
}

func Test_CommandHandler_Handle_OverdueFine(t *testing.T) {
	testCases := []struct {
		name                string
		answer              string
		expectedFinePaid    bool
		expectedOutstanding core.Money
	}{
		{"paid now", "y", true, 0},
		{"not paid", "n", false, 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			library := GivenLibrary(t)
			book := library.GivenBook("Dune")
			alice := library.GivenBorrower("Alice")
			loan := library.GivenLoan(t, book, alice, library.FakeClock)

			prompter := NewScriptedPrompter(tc.answer)
			handler := returnbook.NewCommandHandler(library.Registry, library.Journal, prompter)

			// act
			_, err := handler.Handle(context.Background(), returnbook.BuildCommand(book.ID, loan.ID, library.Staff.ID, library.FakeClock.AddDate(0, 0, 20)))

			// assert
			require.NoError(t, err)
			require.Len(t, prompter.Questions(), 1)
			assert.Contains(t, prompter.Questions()[0], "6 day(s) overdue")
			assert.Equal(t, tc.expectedFinePaid, loan.FinePaid)
			assert.Equal(t, core.Money(6), loan.Fine)
			assert.Equal(t, tc.expectedOutstanding, alice.OutstandingFine())

			returned, ok := library.RecordedEvents(t, book.ID)[0].(core.BookReturnedByBorrower)
			require.True(t, ok)
			assert.Equal(t, 6, returned.DaysOverdue)
			assert.Equal(t, tc.expectedFinePaid, returned.FinePaid)
		})
	}
}

func Test_CommandHandler_Handle_Error_WrongBorrower(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	mallory := library.GivenBorrower("Mallory")
	loan := library.GivenLoan(t, book, alice, library.FakeClock)

	prompter := NewScriptedPrompter()
	handler := returnbook.NewCommandHandler(library.Registry, library.Journal, prompter)

	// act
	result, err := handler.Handle(
		context.Background(),
		returnbook.BuildCommandForBorrower(book.ID, loan.ID, library.Staff.ID, mallory.ID, library.FakeClock.Add(time.Hour)),
	)

	// assert
	assert.ErrorIs(t, err, core.ErrPreconditionViolation)
	assert.Contains(t, err.Error(), "wrong borrower for this loan")
	assert.Equal(t, shell.StatusError, result.Outcome)
	assert.False(t, loan.IsReturned())
	assert.Nil(t, loan.ReceivedBy)
	assert.Len(t, alice.Loans(), 1)
	assert.Equal(t, core.StatusIssued, book.Status())
	assert.Empty(t, prompter.Displayed())

	failed, ok := library.RecordedEvents(t, book.ID)[0].(core.ReturningBookFailed)
	require.True(t, ok)
	assert.Equal(t, mallory.ID.String(), failed.BorrowerID)
}

func Test_CommandHandler_Handle_Error_AlreadyReturned(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	loan := library.GivenLoan(t, book, alice, library.FakeClock)
	handler := returnbook.NewCommandHandler(library.Registry, library.Journal, NewScriptedPrompter())
	command := returnbook.BuildCommand(book.ID, loan.ID, library.Staff.ID, library.FakeClock.Add(time.Hour))

	_, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrPreconditionViolation)
	assert.Equal(t,
		[]string{core.BookReturnedByBorrowerEventType, core.ReturningBookFailedEventType},
		library.RecordedEventTypes(t, book.ID),
	)
}

func Test_CommandHandler_Handle_BookWithHoldRequestsIsHeld(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	carol := library.GivenBorrower("Carol")
	loan := library.GivenLoan(t, book, alice, library.FakeClock)
	library.GivenHoldRequest(t, book, carol, library.FakeClock.Add(time.Hour))

	prompter := NewScriptedPrompter()
	handler := returnbook.NewCommandHandler(library.Registry, library.Journal, prompter)

	// act
	_, err := handler.Handle(context.Background(), returnbook.BuildCommand(book.ID, loan.ID, library.Staff.ID, library.FakeClock.Add(2*time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.StatusHeld, book.Status())
	assert.True(t, book.IsIssued())
	assert.Empty(t, carol.Loans(), "return must not issue the book to the next holder")
	assert.Len(t, book.HoldRequests(), 1)
	assert.Contains(t, prompter.Displayed()[0], "held for the earliest hold request")
	library.AssertCirculationInvariants(t, book)
}

func Test_CommandHandler_Handle_Error_UnknownEntities(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	loan := library.GivenLoan(t, book, alice, library.FakeClock)
	handler := returnbook.NewCommandHandler(library.Registry, library.Journal, NewScriptedPrompter())
	ctx := context.Background()

	// act
	_, unknownLoan := handler.Handle(ctx, returnbook.BuildCommand(book.ID, 99, library.Staff.ID, library.FakeClock))
	_, unknownStaff := handler.Handle(ctx, returnbook.BuildCommand(book.ID, loan.ID, 99, library.FakeClock))
	_, unknownBorrower := handler.Handle(ctx, returnbook.BuildCommandForBorrower(book.ID, loan.ID, library.Staff.ID, 99, library.FakeClock))

	// assert
	assert.ErrorIs(t, unknownLoan, catalog.ErrNotFound)
	assert.ErrorIs(t, unknownStaff, catalog.ErrNotFound)
	assert.ErrorIs(t, unknownBorrower, catalog.ErrNotFound)
	assert.False(t, loan.IsReturned())
}

func Test_CommandHandler_Handle_Error_LoanOfAnotherBook(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	dune := library.GivenBook("Dune")
	emma := library.GivenBook("Emma")
	alice := library.GivenBorrower("Alice")
	loan := library.GivenLoan(t, dune, alice, library.FakeClock)
	library.GivenLoan(t, emma, alice, library.FakeClock)
	handler := returnbook.NewCommandHandler(library.Registry, library.Journal, NewScriptedPrompter())

	// act
	_, err := handler.Handle(context.Background(), returnbook.BuildCommand(emma.ID, loan.ID, library.Staff.ID, library.FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrPreconditionViolation)
	assert.False(t, loan.IsReturned())
	assert.True(t, emma.IsIssued())
}
