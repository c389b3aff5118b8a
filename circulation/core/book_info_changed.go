package core

import (
	"time"
)

// BookInfoChangedEventType is the event type identifier.
const BookInfoChangedEventType = "BookInfoChanged"

// BookInfoChanged carries the complete book info after an edit.
type BookInfoChanged struct {
	EventType  EventTypeString
	BookID     BookIDString
	Title      string
	Subject    string
	Author     string
	OccurredAt OccurredAtTS
}

// BuildBookInfoChanged creates a new BookInfoChanged event.
func BuildBookInfoChanged(bookID ID, title, subject, author string, occurredAt time.Time) BookInfoChanged {
	return BookInfoChanged{
		EventType:  BookInfoChangedEventType,
		BookID:     bookID.String(),
		Title:      title,
		Subject:    subject,
		Author:     author,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookInfoChanged) IsEventType() string {
	return BookInfoChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookInfoChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookInfoChanged) IsErrorEvent() bool {
	return false
}
