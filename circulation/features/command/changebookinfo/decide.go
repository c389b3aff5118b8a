package changebookinfo

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// Decide determines whether the command changes the book's information.
//
// Business Rules:
//
//	GIVEN: a catalogued book
//	WHEN: ChangeBookInfo is received
//	THEN: BookInfoChanged with the resulting title, subject and author
//	IDEMPOTENCY: no event if every supplied field equals the current value
func Decide(book *core.Book, command Command) core.DecisionResult {
	title := valueOr(command.Title, book.Title())
	subject := valueOr(command.Subject, book.Subject())
	author := valueOr(command.Author, book.Author())

	if title == book.Title() && subject == book.Subject() && author == book.Author() {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildBookInfoChanged(command.BookID, title, subject, author, command.OccurredAt))
}

func valueOr(value *string, current string) string {
	if value == nil {
		return current
	}

	return *value
}
