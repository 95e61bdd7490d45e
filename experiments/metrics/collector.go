package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one search run.
type SearchMetric struct {
	Breadth    int
	MaxDepth   int
	Duration   time.Duration
	Rollouts   int // Start plus expand steps completed
	Nodes      int // Nodes constructed (== final root visit count)
	TreeHeight int
	Solved     bool
}

// RunConfig identifies one search configuration under experiment.
type RunConfig struct {
	ID       int
	Breadth  int
	MaxDepth int
	Seed     uint64
}

type Collector interface {
	Start(breadth, maxDepth int)
	AddRollout()
	AddNodes(count int)
	SetOutcome(height int, solved bool)
	Complete() SearchMetric
}

type collector struct {
	breadth   int
	maxDepth  int
	startTime time.Time
	rollouts  atomic.Int64
	nodes     atomic.Int64
	height    atomic.Int64
	solved    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(breadth, maxDepth int) {
	m.startTime = time.Now()
	m.breadth = breadth
	m.maxDepth = maxDepth
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddNodes(count int) {
	m.nodes.Add(int64(count))
}

func (m *collector) SetOutcome(height int, solved bool) {
	m.height.Store(int64(height))
	m.solved.Store(solved)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Breadth:    m.breadth,
		MaxDepth:   m.maxDepth,
		Duration:   time.Since(m.startTime),
		Rollouts:   int(m.rollouts.Load()),
		Nodes:      int(m.nodes.Load()),
		TreeHeight: int(m.height.Load()),
		Solved:     m.solved.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(breadth, maxDepth int)        {}
func (m *dummyCollector) AddRollout()                        {}
func (m *dummyCollector) AddNodes(count int)                 {}
func (m *dummyCollector) SetOutcome(height int, solved bool) {}
func (m *dummyCollector) Complete() SearchMetric             { return SearchMetric{} }
