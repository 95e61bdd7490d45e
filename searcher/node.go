package searcher

import (
	"math"

	"lats/trajectory"
)

// Node is one point in the search tree: one agent turn (the record),
// its evaluation, and the running statistics maintained by
// backpropagation. Children are owned by the parent in creation order;
// the parent link is a plain back-reference and is nil for the root.
type Node struct {
	parent     *Node
	children   []*Node
	record     []trajectory.Entry
	reflection trajectory.Reflection
	visits     int
	value      float64
	depth      int
	solved     bool
}

// newNode constructs a node under parent (nil for the root), marks the
// solved flag up the ancestor chain if the reflection found a solution,
// and backpropagates the normalized score starting at the node itself.
// The visits field starts at zero; the construction-time
// backpropagation brings it to one.
func newNode(record []trajectory.Entry, reflection trajectory.Reflection, parent *Node) *Node {
	depth := 1
	if parent != nil {
		depth = parent.depth + 1
	}

	n := &Node{
		parent:     parent,
		record:     record,
		reflection: reflection,
		depth:      depth,
		solved:     reflection.FoundSolution,
	}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	if n.solved {
		n.markSolved()
	}
	n.backpropagate(reflection.Normalized())
	return n
}

// markSolved sets the solved flag on every ancestor up to the root.
// The flag is monotonic: it is never cleared.
func (n *Node) markSolved() {
	for node := n; node != nil; node = node.parent {
		node.solved = true
	}
}

// backpropagate folds a reward in [0,1] into the running mean of this
// node and every ancestor. Iterative: deep trees must not recurse.
func (n *Node) backpropagate(reward float64) {
	for node := n; node != nil; node = node.parent {
		node.visits++
		node.value = (node.value*float64(node.visits-1) + reward) / float64(node.visits)
	}
}

// UCB returns the upper confidence bound of the node against its
// parent's visit count. The stored value is already a running mean, so
// it enters the bound directly. Calling UCB on a parentless node is a
// contract violation and fails with ErrInvalidOperation.
func (n *Node) UCB(explorationWeight float64) (float64, error) {
	if n.parent == nil {
		return 0, ErrInvalidOperation
	}
	if n.visits == 0 { // Unreachable: construction backpropagates once
		return n.value, nil
	}

	exploration := math.Sqrt(math.Log(float64(n.parent.visits)) / float64(n.visits))
	return n.value + explorationWeight*exploration, nil
}

// SelectBestChild returns the direct child with the highest upper
// confidence bound, or nil for a childless node. Ties keep the earliest
// child.
func (n *Node) SelectBestChild(explorationWeight float64) *Node {
	if len(n.children) == 0 {
		return nil
	}

	var best *Node
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		score, err := child.UCB(explorationWeight)
		if err != nil {
			panic("child node has no parent")
		}
		if score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// Height is 1 for a terminal node, otherwise 1 plus the tallest child
// subtree. Non-decreasing as the tree grows.
func (n *Node) Height() int {
	if len(n.children) == 0 {
		return 1
	}

	max := 0
	for _, child := range n.children {
		if h := child.Height(); h > max {
			max = h
		}
	}
	return 1 + max
}

// Trajectory walks from the node to the root collecting each node's
// record, optionally followed by the node's reflection rendered as an
// entry, and returns the result root-first.
func (n *Node) Trajectory(includeReflections bool) trajectory.Trajectory {
	var chunks [][]trajectory.Entry
	for node := n; node != nil; node = node.parent {
		chunk := node.record
		if includeReflections {
			chunk = append(chunk[:len(chunk):len(chunk)], node.reflection.AsEntry())
		}
		chunks = append(chunks, chunk)
	}

	var out trajectory.Trajectory
	for i := len(chunks) - 1; i >= 0; i-- {
		out = append(out, chunks[i]...)
	}
	return out
}

// BestSolution traverses the subtree breadth-first and returns the
// terminal solved node with the highest value. When no terminal node in
// the subtree is solved, every candidate scores zero and the
// first-visited node, the receiver itself, wins the tie; callers get
// the origin back as a fallback rather than a real answer.
func (n *Node) BestSolution() *Node {
	var best *Node
	maxScore := math.Inf(-1)

	queue := []*Node{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		score := 0.0
		if len(node.children) == 0 && node.solved {
			score = node.value
		}
		if score > maxScore {
			maxScore = score
			best = node
		}

		queue = append(queue, node.children...)
	}
	return best
}

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Children() []*Node { return n.children }

func (n *Node) Record() []trajectory.Entry { return n.record }

func (n *Node) Reflection() trajectory.Reflection { return n.reflection }

func (n *Node) Visits() int { return n.visits }

// Value is the running mean of all rewards backpropagated through the
// node, in [0,1].
func (n *Node) Value() float64 { return n.value }

func (n *Node) Depth() int { return n.depth }

// Solved reports whether this node or any descendant found a solution.
func (n *Node) Solved() bool { return n.solved }
