package catalog_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

func Test_Registry_LookupsFindRegisteredEntities(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	book := registry.AddBook("Dune", "Science Fiction", "Frank Herbert")
	borrower := registry.RegisterBorrower("Bob", "Side Street 2")
	staff := registry.AddStaff("Ada", "Main Street 1", "E-1", 2500)

	// act
	foundBook, bookErr := registry.Book(book.ID)
	foundBorrower, borrowerErr := registry.Borrower(borrower.ID)
	foundStaff, staffErr := registry.Staff(staff.ID)

	// assert
	require.NoError(t, bookErr)
	require.NoError(t, borrowerErr)
	require.NoError(t, staffErr)
	assert.Same(t, book, foundBook)
	assert.Same(t, borrower, foundBorrower)
	assert.Same(t, staff, foundStaff)
}

func Test_Registry_UnknownIDsAreNotFound(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	// act
	_, bookErr := registry.Book(42)
	_, borrowerErr := registry.Borrower(42)
	_, staffErr := registry.Staff(42)
	_, loanErr := registry.Loan(42)
	_, lockErr := registry.LockBook(42)

	// assert
	for _, err := range []error{bookErr, borrowerErr, staffErr, loanErr, lockErr} {
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		assert.True(t, core.IsKind(err, catalog.ErrNotFound))
	}
}

func Test_Registry_LoanIsVisibleOnlyAfterRecording(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	book := registry.AddBook("Dune", "Science Fiction", "Frank Herbert")
	borrower := registry.RegisterBorrower("Bob", "Side Street 2")
	staff := registry.AddStaff("Ada", "Main Street 1", "E-1", 2500)
	loan := registry.NewLoan(borrower, book, staff, time.Now())

	_, errBefore := registry.Loan(loan.ID)

	// act
	registry.RecordLoan(loan)

	// assert
	assert.ErrorIs(t, errBefore, catalog.ErrNotFound)
	found, err := registry.Loan(loan.ID)
	require.NoError(t, err)
	assert.Same(t, loan, found)
}

func Test_Registry_ListsAreOrderedByID(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	for _, title := range []string{"C", "A", "B", "D", "E", "F", "G", "H", "I", "J", "K"} {
		registry.AddBook(title, "", "")
	}

	// act
	books := registry.Books()

	// assert
	require.Len(t, books, 11)
	for i := 1; i < len(books); i++ {
		assert.Less(t, books[i-1].ID, books[i].ID)
	}
	assert.Equal(t, "C", books[0].Title())
}

func Test_Registry_StaffMembersAreOrderedByID(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	ada := registry.AddStaff("Ada", "Main Street 1", "E-1", 2500)
	bea := registry.AddStaff("Bea", "Main Street 2", "E-2", 2400)

	// act
	staff := registry.StaffMembers()

	// assert
	require.Len(t, staff, 2)
	assert.Same(t, ada, staff[0])
	assert.Same(t, bea, staff[1])
}

func Test_Registry_SetPolicyRejectsInvalidPolicy(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	// act
	err = registry.SetPolicy(core.LendingPolicy{LoanPeriodDays: -1})

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Equal(t, core.DefaultLendingPolicy(), registry.Policy())
}

func Test_NewRegistry_WithOptions(t *testing.T) {
	// arrange
	ids := core.NewIDAllocator()
	ids.SetCount(core.KindBook, 5)
	policy := core.LendingPolicy{LoanPeriodDays: 7, FinePerDay: 0.5}

	// act
	registry, err := catalog.NewRegistry(catalog.WithIDAllocator(ids), catalog.WithPolicy(policy))

	// assert
	require.NoError(t, err)
	assert.Equal(t, policy, registry.Policy())
	assert.Equal(t, core.ID(6), registry.AddBook("Dune", "", "").ID)
}

func Test_NewRegistry_RejectsInvalidOptions(t *testing.T) {
	_, errPolicy := catalog.NewRegistry(catalog.WithPolicy(core.LendingPolicy{FinePerDay: -1}))
	_, errIDs := catalog.NewRegistry(catalog.WithIDAllocator(nil))

	assert.ErrorIs(t, errPolicy, core.ErrInvalidArgument)
	assert.ErrorIs(t, errIDs, core.ErrInvalidArgument)
}

func Test_Registry_LockBookSerializesAccess(t *testing.T) {
	// arrange
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	book := registry.AddBook("Dune", "", "")
	counter := 0
	var wg sync.WaitGroup

	// act
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, lockErr := registry.LockBook(book.ID)
			if lockErr != nil {
				return
			}
			defer unlock()

			counter++
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, 50, counter)
}
