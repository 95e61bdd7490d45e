package searcher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"lats/agent"
	"lats/experiments/metrics"
	"lats/trajectory"
)

// Hyperparameter defaults for the search
const (
	DefaultBreadth           = 5   // Candidates generated per expansion
	DefaultMaxDepth          = 5   // Tree height bound ending the search
	DefaultExplorationWeight = 1.0 // UCB exploration coefficient
)

type Option func(l *LATS)

func WithBreadth(n int) Option {
	return func(l *LATS) {
		if n > 0 {
			l.breadth = n
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(l *LATS) {
		if depth > 0 {
			l.maxDepth = depth
		}
	}
}

func WithExplorationWeight(weight float64) Option {
	return func(l *LATS) {
		if weight > 0 {
			l.exploration = weight
		}
	}
}

func WithMetrics() Option {
	return func(l *LATS) {
		l.metrics = metrics.NewCollector()
	}
}

// LATS drives a language agent tree search: a sequential
// start/expand/end state machine over a tree of scored candidate
// actions. One instance may serve many runs, but each run owns its own
// tree; the configuration and collaborators are fixed at construction
// so independent runs can share a process without ambient state.
type LATS struct {
	generator   agent.Generator
	executor    agent.ToolExecutor
	evaluator   agent.Evaluator
	breadth     int
	maxDepth    int
	exploration float64
	metrics     metrics.Collector
}

func NewLATS(generator agent.Generator, executor agent.ToolExecutor, evaluator agent.Evaluator, options ...Option) *LATS {
	if generator == nil || executor == nil || evaluator == nil {
		panic("Must provide a generator, an executor and an evaluator")
	}

	l := &LATS{ // Default values
		generator:   generator,
		executor:    executor,
		evaluator:   evaluator,
		breadth:     DefaultBreadth,
		maxDepth:    DefaultMaxDepth,
		exploration: DefaultExplorationWeight,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Result is the outcome of one search run.
type Result struct {
	Root       *Node
	Best       *Node
	Trajectory trajectory.Trajectory
	Solved     bool
	Metric     metrics.SearchMetric
}

// Run searches the task until a solution is found or the tree height
// exceeds the depth bound. A start failure returns a nil result: no
// progress was made. An expand failure still returns the partial
// result built so far alongside the error.
func (l *LATS) Run(ctx context.Context, task string) (*Result, error) {
	l.metrics.Start(l.breadth, l.maxDepth)

	root, err := l.start(ctx, task)
	if err != nil {
		return nil, &StepError{Phase: PhaseStart, Err: err}
	}

	for !l.done(root) {
		if err := ctx.Err(); err != nil {
			return l.finish(root), &StepError{Phase: PhaseExpand, Err: err}
		}
		if err := l.expand(ctx, task, root); err != nil {
			return l.finish(root), &StepError{Phase: PhaseExpand, Err: err}
		}
	}

	return l.finish(root), nil
}

// done is the termination predicate, evaluated after every step.
func (l *LATS) done(root *Node) bool {
	return root.solved || root.Height() > l.maxDepth
}

func (l *LATS) finish(root *Node) *Result {
	best := root.BestSolution()
	l.metrics.SetOutcome(root.Height(), root.solved)
	return &Result{
		Root:       root,
		Best:       best,
		Trajectory: best.Trajectory(false),
		Solved:     root.solved,
		Metric:     l.metrics.Complete(),
	}
}

// start creates the root from a single candidate generated over the
// bare task.
func (l *LATS) start(ctx context.Context, task string) (*Node, error) {
	candidates, err := l.rollout(ctx, task, nil, 1)
	if err != nil {
		return nil, err
	}

	root := newNode(candidates[0].record, candidates[0].reflection, nil)
	l.metrics.AddRollout()
	l.metrics.AddNodes(1)
	return root, nil
}

// expand grows the tree by one level under the best-scoring direct
// child of the root (or the root itself before any expansion). The
// selection is deliberately single-level rather than a best-first
// descent to a leaf; see the anomaly note in DESIGN.md.
func (l *LATS) expand(ctx context.Context, task string, root *Node) error {
	anchor := root
	if child := root.SelectBestChild(l.exploration); child != nil {
		anchor = child
	}

	base := anchor.Trajectory(true)
	candidates, err := l.rollout(ctx, task, base, l.breadth)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		newNode(c.record, c.reflection, anchor)
	}
	l.metrics.AddRollout()
	l.metrics.AddNodes(len(candidates))

	log.Debug().
		Int("anchorDepth", anchor.depth).
		Int("rootVisits", root.visits).
		Int("height", root.Height()).
		Bool("solved", root.solved).
		Msg("expanded search tree")
	return nil
}

type candidate struct {
	record     []trajectory.Entry
	reflection trajectory.Reflection
}

// rollout runs one generate/execute/evaluate pass over the given
// context and returns n fully scored candidates in generation order.
// Tool resolutions and evaluations fan out as index-aligned batches
// that join before any candidate is returned; a failure anywhere
// aborts the whole batch so no partial candidate survives.
func (l *LATS) rollout(ctx context.Context, task string, base trajectory.Trajectory, n int) ([]candidate, error) {
	entries, err := l.generator.Generate(ctx, task, base, n)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	if len(entries) != n {
		return nil, &GenerationError{Err: fmt.Errorf("want %d candidates, got %d", n, len(entries))}
	}

	candidates := make([]candidate, n)

	// Resolve tool calls across all candidates as one batch.
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			record := []trajectory.Entry{entry}
			if len(entry.ToolCalls) > 0 {
				results, err := l.executor.Execute(gctx, entry.ToolCalls)
				if err != nil {
					return fmt.Errorf("candidate %d: %w", i, err)
				}
				record = append(record, results...)
			}
			candidates[i].record = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Score all candidates as one batch.
	g, gctx = errgroup.WithContext(ctx)
	for i := range candidates {
		i := i
		g.Go(func() error {
			full := append(base[:len(base):len(base)], candidates[i].record...)
			reflection, err := l.evaluator.Reflect(gctx, task, full)
			if err != nil {
				return &EvaluationError{Err: fmt.Errorf("candidate %d: %w", i, err)}
			}
			if err := reflection.Validate(); err != nil {
				return &EvaluationError{Err: fmt.Errorf("candidate %d: %w", i, err)}
			}
			// Never trust a solution claim on a turn that ends in a
			// dangling tool call.
			if reflection.FoundSolution && !trajectory.Trajectory(candidates[i].record).EndsWithAssistant() {
				reflection.FoundSolution = false
			}
			candidates[i].reflection = reflection
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return candidates, nil
}
