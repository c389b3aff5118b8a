// Package issuebook implements the Issue Book use case.
//
// The core decides what an issue attempt leads to (core.Book.DecideIssue). This package resolves
// that decision: it records the outcome in the journal, asks the borrower the questions the
// decision carries, applies the loan and tells the borrower what happened.
//
// Expired hold requests are purged from the book's queue before deciding.
package issuebook
