package tools

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"lats/trajectory"
)

// Executor resolves batches of tool calls against a registry. Results
// are positionally aligned with the input calls. An individual tool
// failure is not an error: its payload becomes the result content so
// the evaluator can judge the failed attempt on its merits.
type Executor struct {
	registry *Registry
}

func NewExecutor(registry *Registry) *Executor {
	if registry == nil {
		panic("Must provide a tool registry")
	}
	return &Executor{registry: registry}
}

func (e *Executor) Execute(ctx context.Context, calls []trajectory.ToolCall) ([]trajectory.Entry, error) {
	results := make([]trajectory.Entry, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = trajectory.ToolResult(call, e.resolve(gctx, call))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (e *Executor) resolve(ctx context.Context, call trajectory.ToolCall) string {
	tool, ok := e.registry.Lookup(call.Name)
	if !ok {
		log.Warn().Str("tool", call.Name).Msg("agent requested an unknown tool")
		return fmt.Sprintf("error: unknown tool %q", call.Name)
	}

	out, err := tool.Call(ctx, call.Arguments)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}
