package trajectory

import "fmt"

// MaxScore is the upper bound of the evaluator's raw score scale.
const MaxScore = 10

// Reflection is the evaluator's verdict on one candidate trajectory: a
// free-text critique, an integer score on [0,MaxScore] and whether the
// candidate fully solves the task.
type Reflection struct {
	Critique      string
	Score         int
	FoundSolution bool
}

// Normalized maps the raw score to the [0,1] reward domain used by
// backpropagation.
func (r Reflection) Normalized() float64 {
	return float64(r.Score) / MaxScore
}

func (r Reflection) Validate() error {
	if r.Score < 0 || r.Score > MaxScore {
		return fmt.Errorf("score %d outside [0,%d]", r.Score, MaxScore)
	}
	return nil
}

// AsEntry renders the reflection as a user-role entry so it can be fed
// back into the context of later generations.
func (r Reflection) AsEntry() Entry {
	return User(fmt.Sprintf("Reflection: %s\nScore: %d/%d", r.Critique, r.Score, MaxScore))
}
