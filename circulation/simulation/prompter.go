package simulation

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// autoPrompter answers yes/no questions at random and counts what it was shown.
type autoPrompter struct {
	mu             sync.Mutex
	rng            *rand.Rand
	yesProbability float64

	questions atomic.Int64
	messages  atomic.Int64
}

func newAutoPrompter(seed int64, yesProbability float64) *autoPrompter {
	return &autoPrompter{
		rng:            rand.New(rand.NewSource(seed)), //nolint:gosec
		yesProbability: yesProbability,
	}
}

func (p *autoPrompter) PromptYesNo(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.questions.Add(1)

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.rng.Float64() < p.yesProbability, nil
}

// PromptText always answers with an empty line.
func (p *autoPrompter) PromptText(ctx context.Context, _ string) (string, error) {
	p.questions.Add(1)

	return "", ctx.Err()
}

func (p *autoPrompter) Display(_ context.Context, _ string) error {
	p.messages.Add(1)

	return nil
}

// clock is the simulated time shared by all workers.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)

	return c.now
}

func (c *clock) current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}
