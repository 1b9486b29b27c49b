package metrics

import "github.com/san-kum/sortviz/internal/step"

type Metric interface {
	Name() string
	Observe(s step.Step)
	Value() float64
	Reset()
}

// Set fans recorded steps out to a list of metrics. It is a step.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the metrics shown for every run.
func Default() *Set {
	return NewSet(NewComparisons(), NewSwaps(), NewMilestones(), NewRate())
}

func (s *Set) OnStep(st step.Step) {
	for _, m := range s.metrics {
		m.Observe(st)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Values returns the current value of every metric by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns metric names in registration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.metrics))
	for i, m := range s.metrics {
		out[i] = m.Name()
	}
	return out
}
