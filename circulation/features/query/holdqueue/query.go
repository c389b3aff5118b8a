package holdqueue

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	queryType = "HoldQueue"
)

// Query represents the intent to list the hold requests of a book at AsOf.
type Query struct {
	BookID core.ID
	AsOf   time.Time
}

// BuildQuery creates a new Query with the provided book ID.
func BuildQuery(bookID core.ID, asOf time.Time) Query {
	return Query{
		BookID: bookID,
		AsOf:   asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
