package simulation

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Report summarizes a simulation run.
type Report struct {
	Operations int

	// Outcomes counts the outcome of every executed scenario, per scenario type.
	Outcomes map[ScenarioType]map[string]int
	Errors   int

	Questions int64
	Messages  int64

	SimulatedTime time.Duration
	Duration      time.Duration

	// InvariantViolation is nil when every book was in a consistent state after the run.
	InvariantViolation error
}

func newReport() Report {
	return Report{Outcomes: make(map[ScenarioType]map[string]int)}
}

func (r *Report) add(scenarioType ScenarioType, outcome string, err error) {
	r.Operations++

	if err != nil {
		r.Errors++
	}

	if r.Outcomes[scenarioType] == nil {
		r.Outcomes[scenarioType] = make(map[string]int)
	}

	r.Outcomes[scenarioType][outcome]++
}

// Count returns how many scenarios of a type ended with an outcome.
func (r Report) Count(scenarioType ScenarioType, outcome string) int {
	return r.Outcomes[scenarioType][outcome]
}

func (r Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Operations: %d (%d errors) in %s\n", r.Operations, r.Errors, r.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "Simulated time: %.1f days\n", r.SimulatedTime.Hours()/24)
	fmt.Fprintf(&b, "Questions answered: %d, messages shown: %d\n", r.Questions, r.Messages)

	for _, w := range scenarioWeights {
		outcomes := r.Outcomes[w.scenarioType]
		if len(outcomes) == 0 {
			continue
		}

		names := make([]string, 0, len(outcomes))
		for name := range outcomes {
			names = append(names, name)
		}

		slices.Sort(names)

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%d", name, outcomes[name]))
		}

		fmt.Fprintf(&b, "  %-10s %s\n", w.scenarioType, strings.Join(parts, " "))
	}

	if r.InvariantViolation != nil {
		fmt.Fprintf(&b, "Invariants: %v\n", r.InvariantViolation)
	} else {
		b.WriteString("Invariants: ok\n")
	}

	return b.String()
}
