package searcher

import (
	"sync/atomic"
	"time"
)

// Metric summarizes one search: how deep it was asked to go, how deep it
// actually completed, and how much work it did.
type Metric struct {
	Depth          int
	CompletedDepth int
	Nodes          int64
	Cutoffs        int64
	DeadlineHit    bool
	Duration       time.Duration
}

// Collector gathers search metrics. The dummy collector makes collection
// free when nobody is looking.
type Collector interface {
	Start(depth int)
	AddNode()
	AddCutoff()
	SetCompletedDepth(depth int)
	SetDeadlineHit()
	Complete() Metric
}

type collector struct {
	depth          int
	startTime      time.Time
	nodes          atomic.Int64
	cutoffs        atomic.Int64
	completedDepth atomic.Int64
	deadlineHit    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(depth int) {
	c.depth = depth
	c.startTime = time.Now()
	c.nodes.Store(0)
	c.cutoffs.Store(0)
	c.completedDepth.Store(0)
	c.deadlineHit.Store(false)
}

func (c *collector) AddNode() {
	c.nodes.Add(1)
}

func (c *collector) AddCutoff() {
	c.cutoffs.Add(1)
}

func (c *collector) SetCompletedDepth(depth int) {
	c.completedDepth.Store(int64(depth))
}

func (c *collector) SetDeadlineHit() {
	c.deadlineHit.Store(true)
}

func (c *collector) Complete() Metric {
	return Metric{
		Depth:          c.depth,
		CompletedDepth: int(c.completedDepth.Load()),
		Nodes:          c.nodes.Load(),
		Cutoffs:        c.cutoffs.Load(),
		DeadlineHit:    c.deadlineHit.Load(),
		Duration:       time.Since(c.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) Start(int) {}

func (dummyCollector) AddNode() {}

func (dummyCollector) AddCutoff() {}

func (dummyCollector) SetCompletedDepth(int) {}

func (dummyCollector) SetDeadlineHit() {}

func (dummyCollector) Complete() Metric { return Metric{} }
