package makeholdrequest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/makeholdrequest"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_Decide_PlacesHoldOnIssuedBook(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	bob := library.GivenBorrower("Bob")
	library.GivenLoan(t, book, alice, library.FakeClock)

	// act
	result := makeholdrequest.Decide(book, bob, makeholdrequest.BuildCommand(book.ID, bob.ID, library.FakeClock))

	// assert
	assert.True(t, result.IsSuccess())
	assert.Equal(t, core.HoldRequestPlacedEventType, result.Event.IsEventType())
	assert.Empty(t, book.HoldRequests(), "Decide must not change the book")
	assert.Equal(t, makeholdrequest.MessagePlaced, makeholdrequest.MessageFor(result))
}

func Test_Decide_RejectsBorrowerWhoHasTheBook(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	library.GivenLoan(t, book, alice, library.FakeClock)

	// act
	result := makeholdrequest.Decide(book, alice, makeholdrequest.BuildCommand(book.ID, alice.ID, library.FakeClock))

	// assert
	assert.True(t, result.IsRejected())
	assert.NoError(t, result.HasError())
	assert.Equal(t, core.PlacingHoldRequestFailedEventType, result.Event.IsEventType())
	assert.True(t, result.Event.IsErrorEvent())
	assert.Equal(t, makeholdrequest.MessageAlreadyOnLoan, makeholdrequest.MessageFor(result))
}

func Test_Decide_DuplicateIsIdempotent(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	alice := library.GivenBorrower("Alice")
	bob := library.GivenBorrower("Bob")
	library.GivenLoan(t, book, alice, library.FakeClock)
	library.GivenHoldRequest(t, book, bob, library.FakeClock)

	// act
	result := makeholdrequest.Decide(book, bob, makeholdrequest.BuildCommand(book.ID, bob.ID, library.FakeClock))

	// assert
	assert.True(t, result.IsIdempotent())
	assert.False(t, result.HasEventToAppend())
	assert.Equal(t, makeholdrequest.MessageDuplicate, makeholdrequest.MessageFor(result))
}

func Test_Decide_AvailableBookViolatesPrecondition(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Dune")
	bob := library.GivenBorrower("Bob")

	// act
	result := makeholdrequest.Decide(book, bob, makeholdrequest.BuildCommand(book.ID, bob.ID, library.FakeClock))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrPreconditionViolation)
	assert.Equal(t, core.PlacingHoldRequestFailedEventType, result.Event.IsEventType())
}
