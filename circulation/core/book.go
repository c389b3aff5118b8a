package core

import (
	"time"
)

// CirculationStatus is the circulation state of a Book.
type CirculationStatus int

const (
	// StatusAvailable means the book is on the shelf and nobody waits for it.
	StatusAvailable CirculationStatus = iota

	// StatusIssued means the book is on loan.
	StatusIssued

	// StatusHeld means the book was returned while hold requests were pending.
	// It stays reserved until the earliest holder issues it or the last request is gone.
	StatusHeld
)

func (s CirculationStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusIssued:
		return "issued"
	case StatusHeld:
		return "held"
	default:
		return "unknown"
	}
}

// HoldOutcome tells what became of a hold request attempt.
type HoldOutcome int

const (
	// HoldPlaced means the request was appended to the book's queue.
	HoldPlaced HoldOutcome = iota

	// HoldRejectedAlreadyOnLoan means the borrower currently has the book on loan.
	HoldRejectedAlreadyOnLoan

	// HoldRejectedDuplicate means the borrower already has a pending request for the book.
	HoldRejectedDuplicate
)

func (o HoldOutcome) String() string {
	switch o {
	case HoldPlaced:
		return "placed"
	case HoldRejectedAlreadyOnLoan:
		return "rejected: already on loan"
	case HoldRejectedDuplicate:
		return "rejected: duplicate"
	default:
		return "unknown"
	}
}

// Book is a catalogued book with its circulation state and hold request queue.
//
// A Book is not safe for concurrent use. Every mutation of a book, and of the borrower lists
// it touches, happens while the caller holds the book's lock in the catalog.
// Whenever the book is not issued its queue is empty; all transitions below keep it that way.
type Book struct {
	ID ID

	title   string
	subject string
	author  string

	status      CirculationStatus
	currentLoan *Loan
	queue       HoldQueue
}

// NewBook creates an available book with an ID from ids.
func NewBook(ids *IDAllocator, title, subject, author string) *Book {
	return &Book{
		ID:      ids.Next(KindBook),
		title:   title,
		subject: subject,
		author:  author,
		status:  StatusAvailable,
	}
}

// Title returns the book's title.
func (b *Book) Title() string { return b.title }

// Subject returns the book's subject.
func (b *Book) Subject() string { return b.subject }

// Author returns the book's author.
func (b *Book) Author() string { return b.author }

// Status returns the circulation status.
func (b *Book) Status() CirculationStatus {
	return b.status
}

// IsIssued reports whether the book is unavailable for a plain issue, either on loan or held.
func (b *Book) IsIssued() bool {
	return b.status != StatusAvailable
}

// CurrentLoan returns the open loan of this book.
func (b *Book) CurrentLoan() (*Loan, bool) {
	return b.currentLoan, b.currentLoan != nil
}

// AddHoldRequest appends hr to the queue.
// It fails with ErrPreconditionViolation if the book is not issued.
// A nil request or a request for another book is ignored.
func (b *Book) AddHoldRequest(hr *HoldRequest) error {
	if !b.IsIssued() {
		return NewOpError("add hold request", ErrPreconditionViolation, "book %s is not issued", b.ID)
	}

	if hr == nil || hr.Book != b {
		return nil
	}

	b.queue.Enqueue(hr)

	return nil
}

// RemoveHoldRequest discards the earliest hold request, also from its borrower's list.
// It does nothing if the queue is empty.
func (b *Book) RemoveHoldRequest() {
	head, ok := b.queue.Dequeue()
	if !ok {
		return
	}

	head.Borrower.removeHoldRequest(head)
	b.releaseIfUnclaimed()
}

// PeekEarliest returns the earliest hold request without removing it.
func (b *Book) PeekEarliest() (*HoldRequest, bool) {
	return b.queue.Peek()
}

// HoldRequests returns the pending hold requests in queue order.
func (b *Book) HoldRequests() []*HoldRequest {
	return b.queue.Requests()
}

// CancelHoldRequest removes hr from the queue and from its borrower's list.
func (b *Book) CancelHoldRequest(hr *HoldRequest) bool {
	if hr == nil || !b.queue.Remove(hr) {
		return false
	}

	hr.Borrower.removeHoldRequest(hr)
	b.releaseIfUnclaimed()

	return true
}

// ExpiredHoldRequests returns the pending hold requests that have expired at now under policy.
func (b *Book) ExpiredHoldRequests(policy LendingPolicy, now time.Time) []*HoldRequest {
	var expired []*HoldRequest

	for _, hr := range b.queue.Requests() {
		if policy.HoldRequestExpired(hr.RequestedAt, now) {
			expired = append(expired, hr)
		}
	}

	return expired
}

// DecideHoldRequest checks whether borrower may place a hold request on this book.
// The checks run in order: an active loan of this book, then a pending request for it.
func (b *Book) DecideHoldRequest(borrower *Borrower) (HoldOutcome, error) {
	if borrower == nil {
		return 0, NewOpError("make hold request", ErrInvalidArgument, "borrower is missing")
	}

	if borrower.HasActiveLoanFor(b) {
		return HoldRejectedAlreadyOnLoan, nil
	}

	if borrower.HasHoldRequestFor(b) {
		return HoldRejectedDuplicate, nil
	}

	if !b.IsIssued() {
		return 0, NewOpError("make hold request", ErrPreconditionViolation, "book %s is not issued", b.ID)
	}

	return HoldPlaced, nil
}

// MakeHoldRequest places a hold request for borrower, made at now.
// The request lands in the book's queue and in the borrower's list, or in neither.
func (b *Book) MakeHoldRequest(borrower *Borrower, now time.Time) (HoldOutcome, *HoldRequest, error) {
	outcome, err := b.DecideHoldRequest(borrower)
	if err != nil || outcome != HoldPlaced {
		return outcome, nil, err
	}

	hr := NewHoldRequest(borrower, b, now)
	if err = b.AddHoldRequest(hr); err != nil {
		return outcome, nil, err
	}

	borrower.addHoldRequest(hr)

	return HoldPlaced, hr, nil
}

// ChangeInfo replaces the supplied fields and leaves nil ones unchanged.
// It reports whether any field changed.
func (b *Book) ChangeInfo(title, subject, author *string) bool {
	changed := false

	for _, f := range []struct {
		field *string
		value *string
	}{
		{&b.title, title},
		{&b.subject, subject},
		{&b.author, author},
	} {
		if f.value != nil && *f.value != *f.field {
			*f.field = *f.value
			changed = true
		}
	}

	return changed
}

// releaseIfUnclaimed makes a held book available once nobody waits for it anymore.
func (b *Book) releaseIfUnclaimed() {
	if b.status == StatusHeld && b.queue.IsEmpty() {
		b.status = StatusAvailable
	}
}
