package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

func Test_CheckInvariants_HoldAcrossTheCirculationCycle(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	staff := registry.AddStaff("Ada", "Main Street 1", "E-1", 2500)
	book := registry.AddBook("Dune", "Science Fiction", "Frank Herbert")
	registry.AddBook("Emma", "Fiction", "Jane Austen")
	alice := registry.RegisterBorrower("Alice", "Elm Street 1")
	bob := registry.RegisterBorrower("Bob", "Oak Street 2")

	// act + assert: issued
	decision, err := book.DecideIssue(alice)
	require.NoError(t, err)
	loan := registry.NewLoan(alice, book, staff, now)
	require.NoError(t, book.ApplyIssue(decision, loan))
	registry.RecordLoan(loan)
	assert.NoError(t, registry.CheckInvariants())

	// act + assert: issued with a hold request
	_, _, err = book.MakeHoldRequest(bob, now.Add(time.Hour))
	require.NoError(t, err)
	assert.NoError(t, registry.CheckInvariants())

	// act + assert: held after return
	returnDecision, err := book.DecideReturn(alice, loan, registry.Policy(), now.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.NoError(t, book.ApplyReturn(returnDecision, staff, false))
	assert.Equal(t, core.StatusHeld, book.Status())
	assert.NoError(t, registry.CheckInvariants())
}

func Test_CheckBook_AvailableBook(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)
	book := registry.AddBook("Emma", "Fiction", "Jane Austen")

	// act
	err = catalog.CheckBook(book)

	// assert
	assert.NoError(t, err)
}
