package changebookinfo

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

const (
	commandType = "ChangeBookInfo"
)

// Command represents the intent to correct the catalog information of a book.
// A nil field is left unchanged.
type Command struct {
	BookID     core.ID
	Title      *string
	Subject    *string
	Author     *string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID core.ID, title, subject, author *string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Title:      title,
		Subject:    subject,
		Author:     author,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandFromPrompts asks for every field whether it should change, in the order
// author, subject, title, and asks for the new value when it should.
func CommandFromPrompts(ctx context.Context, prompter shell.Prompter, bookID core.ID, occurredAt time.Time) (Command, error) {
	command := BuildCommand(bookID, nil, nil, nil, occurredAt)

	for _, field := range []struct {
		name  string
		value **string
	}{
		{"author", &command.Author},
		{"subject", &command.Subject},
		{"title", &command.Title},
	} {
		change, err := prompter.PromptYesNo(ctx, "Do you want to update the "+field.name+"?")
		if err != nil {
			return Command{}, err
		}

		if !change {
			continue
		}

		value, err := prompter.PromptText(ctx, "Enter the new "+field.name+":")
		if err != nil {
			return Command{}, err
		}

		*field.value = &value
	}

	return command, nil
}
