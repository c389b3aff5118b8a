package simulation

import (
	"math/rand"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ScenarioType names the operation a worker performs.
type ScenarioType string

const (
	ScenarioIssue     ScenarioType = "issue"
	ScenarioReturn    ScenarioType = "return"
	ScenarioHold      ScenarioType = "hold"
	ScenarioEdit      ScenarioType = "edit"
	ScenarioHistory   ScenarioType = "history"
	ScenarioHoldQueue ScenarioType = "hold_queue"
)

// Scenario is a single operation for a worker.
type Scenario struct {
	Type       ScenarioType
	BookID     core.ID
	BorrowerID core.ID
	StaffID    core.ID
}

var scenarioWeights = []struct {
	scenarioType ScenarioType
	weight       int
}{
	{ScenarioIssue, 40},
	{ScenarioReturn, 30},
	{ScenarioHold, 15},
	{ScenarioEdit, 5},
	{ScenarioHistory, 5},
	{ScenarioHoldQueue, 5},
}

// scenarioSelector draws scenarios over a fixed set of entities.
type scenarioSelector struct {
	rng         *rand.Rand
	books       []core.ID
	borrowers   []core.ID
	staff       []core.ID
	totalWeight int
}

func newScenarioSelector(seed int64, books, borrowers, staff []core.ID) *scenarioSelector {
	total := 0
	for _, w := range scenarioWeights {
		total += w.weight
	}

	return &scenarioSelector{
		rng:         rand.New(rand.NewSource(seed)), //nolint:gosec
		books:       books,
		borrowers:   borrowers,
		staff:       staff,
		totalWeight: total,
	}
}

func (s *scenarioSelector) next() Scenario {
	return Scenario{
		Type:       s.selectWeightedType(),
		BookID:     s.books[s.rng.Intn(len(s.books))],
		BorrowerID: s.borrowers[s.rng.Intn(len(s.borrowers))],
		StaffID:    s.staff[s.rng.Intn(len(s.staff))],
	}
}

func (s *scenarioSelector) selectWeightedType() ScenarioType {
	pick := s.rng.Intn(s.totalWeight)

	for _, w := range scenarioWeights {
		if pick < w.weight {
			return w.scenarioType
		}

		pick -= w.weight
	}

	return ScenarioIssue
}
