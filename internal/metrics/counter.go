package metrics

import (
	"sync/atomic"

	"github.com/san-kum/sortviz/internal/step"
)

// Counter counts steps of one kind.
type Counter struct {
	name  string
	kind  step.Kind
	count atomic.Int64
}

func NewCounter(name string, kind step.Kind) *Counter {
	return &Counter{name: name, kind: kind}
}

func NewComparisons() *Counter { return NewCounter("comparisons", step.KindComparison) }
func NewSwaps() *Counter       { return NewCounter("swaps", step.KindSwap) }
func NewMilestones() *Counter  { return NewCounter("milestones", step.KindMilestone) }

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(s step.Step) {
	if s.Kind == c.kind {
		c.count.Add(1)
	}
}

func (c *Counter) Value() float64 { return float64(c.count.Load()) }

func (c *Counter) Reset() { c.count.Store(0) }
