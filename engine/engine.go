package engine

import (
	"context"

	"github.com/rs/zerolog/log"

	"lats/agent"
	"lats/searcher"
	"lats/trajectory"
)

// Engine wires the search core to its collaborators and exposes the
// consumer-facing entry point.
type Engine struct {
	lats *searcher.LATS
}

func New(generator agent.Generator, executor agent.ToolExecutor, evaluator agent.Evaluator, options ...searcher.Option) *Engine {
	return &Engine{
		lats: searcher.NewLATS(generator, executor, evaluator, options...),
	}
}

// Run searches the task and returns the best trajectory found together
// with whether the tree ever marked a node solved. When an expansion
// step fails, the best trajectory over the partial tree is returned
// alongside the error; a start failure yields nothing.
func (e *Engine) Run(ctx context.Context, task string) (trajectory.Trajectory, bool, error) {
	log.Info().Str("task", task).Msg("starting search")

	result, err := e.lats.Run(ctx, task)
	if err != nil {
		if result == nil {
			log.Error().Err(err).Msg("search made no progress")
			return nil, false, err
		}
		log.Warn().Err(err).
			Int("nodes", result.Root.Visits()).
			Msg("search aborted; returning best of partial tree")
		return result.Trajectory, result.Solved, err
	}

	log.Info().
		Int("nodes", result.Root.Visits()).
		Int("height", result.Root.Height()).
		Bool("solved", result.Solved).
		Msg("search complete")
	return result.Trajectory, result.Solved, nil
}
