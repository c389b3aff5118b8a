package helper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/memengine"
)

// Library bundles what a command or query handler test needs: a registry with one staff
// member, an in-memory journal and a fixed clock.
type Library struct {
	Registry  *catalog.Registry
	Journal   *memengine.Engine
	Staff     *core.Staff
	FakeClock time.Time
}

// GivenLibrary creates an empty Library with the default lending policy.
func GivenLibrary(t testing.TB) *Library {
	t.Helper()

	registry, err := catalog.NewRegistry()
	require.NoError(t, err, "error in arranging test data")

	return &Library{
		Registry:  registry,
		Journal:   memengine.NewEngine(),
		Staff:     registry.AddStaff("Clerk", "Main Street 1", "E-001", 2500),
		FakeClock: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// GivenBook catalogues an available book.
func (l *Library) GivenBook(title string) *core.Book {
	return l.Registry.AddBook(title, "Fiction", "Some Author")
}

// GivenBorrower registers a borrower.
func (l *Library) GivenBorrower(name string) *core.Borrower {
	return l.Registry.RegisterBorrower(name, name+" Street 1")
}

// GivenLoan issues book to borrower at issuedAt without recording an event.
func (l *Library) GivenLoan(t testing.TB, book *core.Book, borrower *core.Borrower, issuedAt time.Time) *core.Loan {
	t.Helper()

	decision, err := book.DecideIssue(borrower)
	require.NoError(t, err, "error in arranging test data")
	require.True(t, decision.IssuesLoan(), "error in arranging test data: book cannot be issued")

	loan := l.Registry.NewLoan(borrower, book, l.Staff, issuedAt)
	require.NoError(t, book.ApplyIssue(decision, loan), "error in arranging test data")
	l.Registry.RecordLoan(loan)

	return loan
}

// GivenHoldRequest places a hold request without recording an event.
func (l *Library) GivenHoldRequest(t testing.TB, book *core.Book, borrower *core.Borrower, requestedAt time.Time) *core.HoldRequest {
	t.Helper()

	outcome, hr, err := book.MakeHoldRequest(borrower, requestedAt)
	require.NoError(t, err, "error in arranging test data")
	require.Equal(t, core.HoldPlaced, outcome, "error in arranging test data")

	return hr
}

// RecordedEvents returns the domain events of a book's stream in journal order.
func (l *Library) RecordedEvents(t testing.TB, bookID core.ID) core.DomainEvents {
	t.Helper()

	return l.QueryEvents(t, shell.BookStreamFilter(bookID))
}

// QueryEvents returns the domain events matching filter in journal order.
func (l *Library) QueryEvents(t testing.TB, filter journal.Filter) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := l.Journal.Query(context.Background(), filter)
	require.NoError(t, err, "error in querying the journal")

	events, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err, "error in mapping journal events")

	return events
}

// RecordedEventTypes returns the event types of a book's stream in journal order.
func (l *Library) RecordedEventTypes(t testing.TB, bookID core.ID) []string {
	t.Helper()

	events := l.RecordedEvents(t, bookID)
	types := make([]string, 0, len(events))

	for _, event := range events {
		types = append(types, event.IsEventType())
	}

	return types
}

// GivenReturn returns loan at returnedAt without recording an event. An owed fine stays unpaid.
func (l *Library) GivenReturn(t testing.TB, loan *core.Loan, returnedAt time.Time) {
	t.Helper()

	decision, err := loan.Book.DecideReturn(loan.Borrower, loan, l.Registry.Policy(), returnedAt)
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, loan.Book.ApplyReturn(decision, l.Staff, false), "error in arranging test data")
}

// AssertCirculationInvariants fails the test when book violates a circulation invariant, see catalog.CheckBook.
func (l *Library) AssertCirculationInvariants(t testing.TB, book *core.Book) {
	t.Helper()

	require.NoError(t, catalog.CheckBook(book))
}
