// Package makeholdrequest implements the Make Hold Request use case.
//
// A borrower joins the hold queue of a book that is issued. The request is refused when the
// borrower has the book on loan, and is a no-op when the borrower already waits for it.
// Placing a hold on a book that is not issued violates a precondition.
//
// The issuebook feature offers the same step when a requested book turns out to be issued,
// so the lock-free part is exported as Place.
package makeholdrequest
