package helper

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrScriptExhausted is returned when a prompt is asked for which no answer was scripted.
var ErrScriptExhausted = errors.New("no scripted answer left")

// ScriptedPrompter implements shell.Prompter with answers that are given up front.
// Yes/no prompts consume "y" or "n" answers, text prompts consume any answer.
// Every question and every displayed message is captured in order.
type ScriptedPrompter struct {
	mu        sync.Mutex
	answers   []string
	questions []string
	displayed []string
}

// NewScriptedPrompter creates a ScriptedPrompter that answers with answers, in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// PromptYesNo implements shell.Prompter.
func (p *ScriptedPrompter) PromptYesNo(ctx context.Context, message string) (bool, error) {
	answer, err := p.next(ctx, message)
	if err != nil {
		return false, err
	}

	switch answer {
	case "y":
		return true, nil
	case "n":
		return false, nil
	default:
		return false, fmt.Errorf("scripted answer %q to %q is not y or n", answer, message)
	}
}

// PromptText implements shell.Prompter.
func (p *ScriptedPrompter) PromptText(ctx context.Context, message string) (string, error) {
	return p.next(ctx, message)
}

// Display implements shell.Prompter.
func (p *ScriptedPrompter) Display(_ context.Context, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.displayed = append(p.displayed, message)

	return nil
}

// Questions returns all questions asked so far.
func (p *ScriptedPrompter) Questions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.questions...)
}

// Displayed returns all messages displayed so far.
func (p *ScriptedPrompter) Displayed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.displayed...)
}

// RemainingAnswers returns how many scripted answers were not consumed.
func (p *ScriptedPrompter) RemainingAnswers() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.answers)
}

func (p *ScriptedPrompter) next(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.questions = append(p.questions, message)

	if len(p.answers) == 0 {
		return "", fmt.Errorf("%w: %q", ErrScriptExhausted, message)
	}

	answer := p.answers[0]
	p.answers = p.answers[1:]

	return answer, nil
}
