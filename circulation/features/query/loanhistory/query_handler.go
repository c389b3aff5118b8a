package loanhistory

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

// QueryHandler runs the workflow: Query -> Unmarshal -> Project.
// External wrappers handle all observability concerns.
type QueryHandler struct {
	journal shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler reading from journal.
func NewQueryHandler(journal shell.QueriesEvents) QueryHandler {
	return QueryHandler{journal: journal}
}

// Handle projects the loan history of the queried borrower.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoanHistory, error) {
	storableEvents, maxSequenceNumber, err := h.journal.Query(ctx, BuildEventFilter(query.BorrowerID))
	if err != nil {
		return LoanHistory{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return LoanHistory{}, err
	}

	return ProjectLoanHistory(history, query, maxSequenceNumber), nil
}
