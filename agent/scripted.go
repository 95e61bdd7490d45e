package agent

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"

	"lats/trajectory"
)

// Scripted is a seeded pseudo-random generator/evaluator pair for
// experiments and tests. Candidates are synthetic assistant turns and
// verdicts are drawn from the seeded source, so a run is reproducible
// given its seed.
type Scripted struct {
	mu          sync.Mutex
	rng         *rand.Rand
	solveChance float64
}

// NewScripted returns a scripted agent drawing from the given seed.
// solveChance is the per-candidate probability of a solved verdict.
func NewScripted(seed uint64, solveChance float64) *Scripted {
	return &Scripted{
		rng:         rand.New(rand.NewSource(seed)),
		solveChance: solveChance,
	}
}

func (s *Scripted) Generate(ctx context.Context, task string, history trajectory.Trajectory, n int) ([]trajectory.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]trajectory.Entry, n)
	for i := range entries {
		entries[i] = trajectory.Assistant(fmt.Sprintf("step %d candidate %d: %08x", len(history), i, s.rng.Uint32()))
	}
	return entries, nil
}

func (s *Scripted) Reflect(ctx context.Context, task string, candidate trajectory.Trajectory) (trajectory.Reflection, error) {
	if err := ctx.Err(); err != nil {
		return trajectory.Reflection{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return trajectory.Reflection{
		Critique:      "scripted verdict",
		Score:         s.rng.Intn(trajectory.MaxScore + 1),
		FoundSolution: s.rng.Float64() < s.solveChance,
	}, nil
}
