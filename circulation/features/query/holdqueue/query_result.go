package holdqueue

import (
	"fmt"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// EmptyQueueMessage is what String returns for a book without pending hold requests.
const EmptyQueueMessage = "No Hold Requests."

// HoldEntry is one pending hold request. Position starts at 1 for the earliest request.
type HoldEntry struct {
	Position     int
	BorrowerID   core.BorrowerIDString
	BorrowerName string
	RequestedAt  time.Time
	Expired      bool
}

// HoldQueue represents the query result.
type HoldQueue struct {
	BookID  core.BookIDString
	Title   string
	Status  string
	Entries []HoldEntry
	Count   int
}

// String renders the queue one request per line.
func (q HoldQueue) String() string {
	if q.Count == 0 {
		return EmptyQueueMessage
	}

	var sb strings.Builder

	for i, entry := range q.Entries {
		if i > 0 {
			sb.WriteByte('\n')
		}

		fmt.Fprintf(&sb, "%d. %s (borrower %s), requested %s",
			entry.Position,
			entry.BorrowerName,
			entry.BorrowerID,
			entry.RequestedAt.Format(time.DateOnly),
		)

		if entry.Expired {
			sb.WriteString(", expired")
		}
	}

	return sb.String()
}
