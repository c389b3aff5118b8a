package issuebook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/issuebook"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_Decide_IssueNowRecordsTheLoan(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	decision, err := book.DecideIssue(alice)
	require.NoError(t, err)
	loan := library.Registry.NewLoan(alice, book, library.Staff, library.FakeClock)

	// act
	result := issuebook.Decide(decision, loan, issuebook.BuildCommand(book.ID, alice.ID, library.Staff.ID, library.FakeClock))

	// assert
	require.True(t, result.IsSuccess())
	event, ok := result.Event.(core.BookIssuedToBorrower)
	require.True(t, ok)
	assert.Equal(t, loan.ID.String(), event.LoanID)
	assert.Equal(t, library.Staff.ID.String(), event.StaffID)
	assert.False(t, event.FromHold)
	assert.False(t, book.IsIssued(), "Decide must not change the book")
}

func Test_Decide_LoanMissingIsAnError(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	decision, err := book.DecideIssue(alice)
	require.NoError(t, err)

	// act
	result := issuebook.Decide(decision, nil, issuebook.BuildCommand(book.ID, alice.ID, library.Staff.ID, library.FakeClock))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidArgument)
}

func Test_Decide_RefusalsAreRejectedWithFailureEvent(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	carol := library.GivenBorrower("Carol")
	dave := library.GivenBorrower("Dave")
	library.GivenLoan(t, book, alice, library.FakeClock)

	offerHold, err := book.DecideIssue(carol)
	require.NoError(t, err)
	library.GivenHoldRequest(t, book, carol, library.FakeClock)
	mustWait, err := book.DecideIssue(dave)
	require.NoError(t, err)

	// act
	offerResult := issuebook.Decide(offerHold, nil, issuebook.BuildCommand(book.ID, carol.ID, library.Staff.ID, library.FakeClock))
	waitResult := issuebook.Decide(mustWait, nil, issuebook.BuildCommand(book.ID, dave.ID, library.Staff.ID, library.FakeClock))

	// assert
	assert.Equal(t, core.IssueOfferHold, offerHold.Outcome)
	assert.True(t, offerResult.IsRejected())
	assert.True(t, offerResult.Event.IsErrorEvent())

	assert.Equal(t, core.IssueMustWait, mustWait.Outcome)
	assert.True(t, waitResult.IsRejected())
	failed, ok := waitResult.Event.(core.IssuingBookFailed)
	require.True(t, ok)
	assert.Equal(t, core.WaitMessage, failed.FailureInfo)
}
