package core

import (
	"strconv"
	"time"
)

// ID identifies an entity within its kind. IDs start at 1; the zero ID means "none".
type ID uint64

// String returns the decimal representation used in events and journal predicates.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool {
	return id == 0
}

// ParseID parses the decimal representation of an ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return ID(n), nil
}

// EntityKind scopes ID uniqueness.
type EntityKind string

const (
	KindBook     EntityKind = "book"
	KindBorrower EntityKind = "borrower"
	KindStaff    EntityKind = "staff"
	KindLoan     EntityKind = "loan"
)

// Instead of implementing full value objects, some alias types are used for event fields ...

// EventTypeString represents the type of an event
type EventTypeString = string

// BookIDString represents a book identifier
type BookIDString = string

// BorrowerIDString represents a borrower identifier
type BorrowerIDString = string

// StaffIDString represents a staff identifier
type StaffIDString = string

// LoanIDString represents a loan identifier
type LoanIDString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
