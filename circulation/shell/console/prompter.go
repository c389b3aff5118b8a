// Package console implements the user-interaction surface on a line-oriented terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

// ErrInputClosed is returned when the input ends before an answer was given.
var ErrInputClosed = errors.New("input closed")

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	lines <-chan string
	out   io.Writer
}

// NewPrompter creates a Prompter. A goroutine reads in until it ends; the prompter is meant to
// live as long as the session.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return &Prompter{lines: lines, out: out}
}

// PromptYesNo asks until the answer is one of y, yes, n or no (case insensitive).
func (p *Prompter) PromptYesNo(ctx context.Context, message string) (bool, error) {
	for {
		answer, err := p.PromptText(ctx, message+" (y/n)")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if err = p.Display(ctx, "Please answer y or n."); err != nil {
			return false, err
		}
	}
}

// PromptText asks for a line of text and returns it trimmed.
func (p *Prompter) PromptText(ctx context.Context, message string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s ", message); err != nil {
		return "", err
	}

	return p.ReadLine(ctx)
}

// ReadLine waits for the next input line.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-p.lines:
		if !ok {
			return "", ErrInputClosed
		}

		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Display writes message on its own line.
func (p *Prompter) Display(_ context.Context, message string) error {
	_, err := fmt.Fprintln(p.out, message)

	return err
}

var _ shell.Prompter = (*Prompter)(nil)
