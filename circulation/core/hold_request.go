package core

import (
	"slices"
	"time"
)

// HoldRequest is a borrower's reservation to receive a book next. It is immutable.
type HoldRequest struct {
	Borrower    *Borrower
	Book        *Book
	RequestedAt time.Time
}

// NewHoldRequest creates a hold request made at requestedAt.
func NewHoldRequest(borrower *Borrower, book *Book, requestedAt time.Time) *HoldRequest {
	return &HoldRequest{Borrower: borrower, Book: book, RequestedAt: requestedAt}
}

// HoldQueue orders hold requests by request time, earliest first.
// Requests with equal timestamps keep their insertion order.
type HoldQueue struct {
	requests []*HoldRequest
}

// Len returns the number of pending requests.
func (q *HoldQueue) Len() int {
	return len(q.requests)
}

// IsEmpty reports whether no request is pending.
func (q *HoldQueue) IsEmpty() bool {
	return len(q.requests) == 0
}

// Enqueue inserts hr behind every request that is not later than it.
func (q *HoldQueue) Enqueue(hr *HoldRequest) {
	i := slices.IndexFunc(q.requests, func(queued *HoldRequest) bool {
		return queued.RequestedAt.After(hr.RequestedAt)
	})

	if i < 0 {
		q.requests = append(q.requests, hr)
		return
	}

	q.requests = slices.Insert(q.requests, i, hr)
}

// Peek returns the earliest request.
func (q *HoldQueue) Peek() (*HoldRequest, bool) {
	if len(q.requests) == 0 {
		return nil, false
	}

	return q.requests[0], true
}

// Dequeue removes and returns the earliest request.
func (q *HoldQueue) Dequeue() (*HoldRequest, bool) {
	head, ok := q.Peek()
	if !ok {
		return nil, false
	}

	q.requests = slices.Delete(q.requests, 0, 1)

	return head, true
}

// Remove drops hr from anywhere in the queue.
func (q *HoldQueue) Remove(hr *HoldRequest) bool {
	i := slices.Index(q.requests, hr)
	if i < 0 {
		return false
	}

	q.requests = slices.Delete(q.requests, i, i+1)

	return true
}

// Requests returns the pending requests in queue order.
func (q *HoldQueue) Requests() []*HoldRequest {
	return slices.Clone(q.requests)
}
