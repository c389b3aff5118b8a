package loanhistory

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	queryType = "LoanHistory"
)

// Query represents the intent to list all loans of a borrower.
type Query struct {
	BorrowerID core.ID
}

// BuildQuery creates a new Query with the provided borrower ID.
func BuildQuery(borrowerID core.ID) Query {
	return Query{
		BorrowerID: borrowerID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
