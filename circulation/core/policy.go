package core

import (
	"fmt"
	"time"
)

// Money is an amount in the library's currency.
type Money float64

// String formats the amount with two decimals.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", float64(m))
}

const day = 24 * time.Hour

// LendingPolicy holds the process-wide lending configuration.
type LendingPolicy struct {
	// LoanPeriodDays is the number of days a book may be kept without a fine.
	LoanPeriodDays int

	// FinePerDay is charged for every full day beyond the loan period.
	FinePerDay Money

	// HoldRequestExpiryDays removes hold requests older than this many days. 0 disables expiry.
	HoldRequestExpiryDays int
}

// DefaultLendingPolicy returns a policy with a 14-day loan period, a fine of 1.00 per day
// and hold requests expiring after 7 days.
func DefaultLendingPolicy() LendingPolicy {
	return LendingPolicy{
		LoanPeriodDays:        14,
		FinePerDay:            1,
		HoldRequestExpiryDays: 7,
	}
}

// Validate rejects negative values.
func (p LendingPolicy) Validate() error {
	switch {
	case p.LoanPeriodDays < 0:
		return NewOpError("validate lending policy", ErrInvalidArgument, "loan period must not be negative")
	case p.FinePerDay < 0:
		return NewOpError("validate lending policy", ErrInvalidArgument, "fine per day must not be negative")
	case p.HoldRequestExpiryDays < 0:
		return NewOpError("validate lending policy", ErrInvalidArgument, "hold request expiry must not be negative")
	}

	return nil
}

// FineFor computes the days overdue and the fine for a loan issued at issuedAt and returned at returnedAt.
// Only full days count. Both values are zero when the book is returned within the loan period.
func (p LendingPolicy) FineFor(issuedAt, returnedAt time.Time) (int, Money) {
	daysKept := int(returnedAt.Sub(issuedAt) / day)
	daysOverdue := daysKept - p.LoanPeriodDays

	if daysOverdue <= 0 {
		return 0, 0
	}

	return daysOverdue, Money(daysOverdue) * p.FinePerDay
}

// HoldRequestExpired reports whether a hold request made at requestedAt has expired at now.
func (p LendingPolicy) HoldRequestExpired(requestedAt, now time.Time) bool {
	if p.HoldRequestExpiryDays == 0 {
		return false
	}

	return now.Sub(requestedAt) > time.Duration(p.HoldRequestExpiryDays)*day
}
