package holdqueue

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
)

// QueryHandler reads the hold queue of a book from the catalog.
type QueryHandler struct {
	registry *catalog.Registry
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(registry *catalog.Registry) QueryHandler {
	return QueryHandler{registry: registry}
}

// Handle projects the hold queue of the queried book.
// It takes the book's lock so the snapshot never shows a half-applied command.
func (h QueryHandler) Handle(ctx context.Context, query Query) (HoldQueue, error) {
	if err := ctx.Err(); err != nil {
		return HoldQueue{}, err
	}

	unlock, err := h.registry.LockBook(query.BookID)
	if err != nil {
		return HoldQueue{}, err
	}
	defer unlock()

	book, err := h.registry.Book(query.BookID)
	if err != nil {
		return HoldQueue{}, err
	}

	return ProjectHoldQueue(book, h.registry.Policy(), query), nil
}
