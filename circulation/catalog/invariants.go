package catalog

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ErrInvariantViolated reports an inconsistent circulation state.
var ErrInvariantViolated = errors.New("circulation invariant violated")

// CheckBook verifies the circulation invariants of one book. The caller must hold the book's lock.
func CheckBook(book *core.Book) error {
	var errs []error

	loan, onLoan := book.CurrentLoan()
	holds := book.HoldRequests()

	switch book.Status() {
	case core.StatusAvailable:
		if onLoan {
			errs = append(errs, fmt.Errorf("book %s is available but on loan %s", book.ID, loan.ID))
		}

		if len(holds) > 0 {
			errs = append(errs, fmt.Errorf("book %s is available but has %d hold request(s)", book.ID, len(holds)))
		}

	case core.StatusIssued:
		if !onLoan {
			errs = append(errs, fmt.Errorf("book %s is issued without a loan", book.ID))
		}

	case core.StatusHeld:
		if onLoan {
			errs = append(errs, fmt.Errorf("book %s is held but on loan %s", book.ID, loan.ID))
		}

		if len(holds) == 0 {
			errs = append(errs, fmt.Errorf("book %s is held without hold requests", book.ID))
		}
	}

	for i, hr := range holds {
		if i > 0 && hr.RequestedAt.Before(holds[i-1].RequestedAt) {
			errs = append(errs, fmt.Errorf("hold requests of book %s are out of order at position %d", book.ID, i+1))
		}

		if hr.Borrower.HasActiveLoanFor(book) {
			errs = append(errs, fmt.Errorf("borrower %s has book %s on loan and a hold request for it", hr.Borrower.ID, book.ID))
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Join(append([]error{ErrInvariantViolated}, errs...)...)
}

// CheckInvariants runs CheckBook for every book, each under its lock.
func (r *Registry) CheckInvariants() error {
	var errs []error

	for _, book := range r.Books() {
		unlock, err := r.LockBook(book.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		errs = append(errs, CheckBook(book))
		unlock()
	}

	return errors.Join(errs...)
}
