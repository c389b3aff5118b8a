package core

import (
	"slices"
	"sync"
)

// Borrower is a library member who borrows books and places hold requests.
// A borrower's lists are touched by operations on different books, so they are guarded by a mutex.
type Borrower struct {
	ID      ID
	Name    string
	Address string

	mu              sync.Mutex
	outstandingFine Money
	loans           []*Loan
	holdRequests    []*HoldRequest
}

// NewBorrower creates a borrower with an ID from ids.
func NewBorrower(ids *IDAllocator, name, address string) *Borrower {
	return &Borrower{
		ID:      ids.Next(KindBorrower),
		Name:    name,
		Address: address,
	}
}

// Loans returns the active loans.
func (b *Borrower) Loans() []*Loan {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.loans)
}

// HoldRequests returns the borrower's pending hold requests on any book.
func (b *Borrower) HoldRequests() []*HoldRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.holdRequests)
}

// OutstandingFine returns the sum of fines not paid at return time.
func (b *Borrower) OutstandingFine() Money {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.outstandingFine
}

// HasActiveLoanFor reports whether the borrower currently has book on loan.
func (b *Borrower) HasActiveLoanFor(book *Book) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.ContainsFunc(b.loans, func(l *Loan) bool { return l.Book == book })
}

// HasHoldRequestFor reports whether the borrower already waits for book.
func (b *Borrower) HasHoldRequestFor(book *Book) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.ContainsFunc(b.holdRequests, func(hr *HoldRequest) bool { return hr.Book == book })
}

func (b *Borrower) addLoan(loan *Loan) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.loans = append(b.loans, loan)
}

func (b *Borrower) removeLoan(loan *Loan) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.loans = slices.DeleteFunc(b.loans, func(l *Loan) bool { return l == loan })
}

func (b *Borrower) addHoldRequest(hr *HoldRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.holdRequests = append(b.holdRequests, hr)
}

func (b *Borrower) removeHoldRequest(hr *HoldRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.holdRequests = slices.DeleteFunc(b.holdRequests, func(h *HoldRequest) bool { return h == hr })
}

func (b *Borrower) addFine(amount Money) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.outstandingFine += amount
}
