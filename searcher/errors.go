package searcher

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation reports a UCB computation on a node without a
// parent. This is a programming error, not a runtime condition.
var ErrInvalidOperation = errors.New("ucb requires a parent node")

// Phase identifies the loop state in which a step failed.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseExpand
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseExpand:
		return "expand"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// StepError is what Run surfaces when a step fails: a start failure
// means no progress was made, an expand failure leaves a partial tree
// the caller can still extract a best solution from.
type StepError struct {
	Phase Phase
	Err   error
}

func (e *StepError) Error() string {
	if e.Phase == PhaseStart {
		return fmt.Sprintf("search made no progress: %v", e.Err)
	}
	return fmt.Sprintf("search aborted with partial tree: %v", e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// GenerationError reports a failed or malformed Action Generator call.
// Fatal to the current step; no node is committed.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generation failed: %v", e.Err) }

func (e *GenerationError) Unwrap() error { return e.Err }

// EvaluationError reports a failed evaluator call or an out-of-range
// score. Fatal to the current step for that candidate.
type EvaluationError struct {
	Err error
}

func (e *EvaluationError) Error() string { return fmt.Sprintf("evaluation failed: %v", e.Err) }

func (e *EvaluationError) Unwrap() error { return e.Err }
