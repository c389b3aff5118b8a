// Package loanhistory implements the Loan History query use case.
//
// It projects all loans of a borrower from the circulation journal: when each book was issued,
// whether and when it came back, and the fine assessed at return. Unlike the catalog, which only
// knows the current state, the journal keeps returned loans, so this is the place to answer
// "what did this borrower borrow, and what do they still owe".
//
// This is a read-only operation, it generates no events.
package loanhistory
