package agent

import (
	"context"

	"lats/trajectory"
)

// Generator produces candidate next actions for the search to explore.
type Generator interface {
	// Generate returns exactly n independent assistant entries
	// continuing the given context, in a stable order.
	Generate(ctx context.Context, task string, history trajectory.Trajectory, n int) ([]trajectory.Entry, error)
}

// ToolExecutor resolves the tool calls embedded in one candidate action.
type ToolExecutor interface {
	// Execute returns one tool entry per call, positionally aligned
	// with the input. An individual tool failure surfaces as the
	// entry's content rather than an error.
	Execute(ctx context.Context, calls []trajectory.ToolCall) ([]trajectory.Entry, error)
}

// Evaluator scores one full candidate trajectory against the task.
type Evaluator interface {
	Reflect(ctx context.Context, task string, candidate trajectory.Trajectory) (trajectory.Reflection, error)
}
