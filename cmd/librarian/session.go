package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/console"
)

const sessionPrompt = "librarian>"

var errUnterminatedQuote = errors.New("unterminated quote")

// run reads commands until quit, the end of input or cancellation of ctx.
// A failed command is reported and the session goes on.
func (a *app) run(ctx context.Context) error {
	_, _ = fmt.Fprintln(a.out, `Circulation desk ready. Type "help" for commands.`)

	for !a.done {
		line, err := a.prompter.PromptText(ctx, sessionPrompt)
		if err != nil {
			if errors.Is(err, console.ErrInputClosed) {
				return nil
			}

			return err
		}

		if err = a.execute(ctx, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			_, _ = fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}

	return nil
}

// execute runs one session line. Every line gets a fresh command tree so flags never
// carry over from the previous line.
func (a *app) execute(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	cmd := a.sessionCmd()
	cmd.SetArgs(args)
	cmd.SetOut(a.out)
	cmd.SetErr(a.out)

	return cmd.ExecuteContext(ctx)
}

func (a *app) sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "desk",
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	cmd.AddGroup(
		&cobra.Group{ID: groupCirculation, Title: "Circulation:"},
		&cobra.Group{ID: groupCatalog, Title: "Catalog:"},
		&cobra.Group{ID: groupDesk, Title: "Desk:"},
	)

	cmd.AddCommand(
		a.issueCmd(),
		a.returnCmd(),
		a.holdCmd(),
		a.editCmd(),
		a.historyCmd(),
		a.holdsCmd(),
		a.booksCmd(),
		a.bookCmd(),
		a.borrowersCmd(),
		a.borrowerCmd(),
		a.addBookCmd(),
		a.addBorrowerCmd(),
		a.addStaffCmd(),
		a.staffCmd(),
		a.policyCmd(),
		a.quitCmd(),
	)

	return cmd
}

// splitArgs splits a line at white space. Single or double quotes group words, a quote of the
// other kind inside them is literal.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inWord  bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}

			current.WriteRune(r)

		case r == '"' || r == '\'':
			quote = r
			inWord = true

		case unicode.IsSpace(r):
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}

		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, errUnterminatedQuote
	}

	if inWord {
		args = append(args, current.String())
	}

	return args, nil
}
