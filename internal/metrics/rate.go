package metrics

import (
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/step"
)

// Rate is the number of gated steps (comparisons and swaps) per second,
// measured between the first and the latest recorded step.
type Rate struct {
	mu      sync.Mutex
	name    string
	first   time.Time
	last    time.Time
	samples int
}

func NewRate() *Rate {
	return &Rate{name: "steps_per_sec"}
}

func (r *Rate) Name() string { return r.name }

func (r *Rate) Observe(s step.Step) {
	if s.Kind != step.KindComparison && s.Kind != step.KindSwap {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.samples == 0 {
		r.first = s.RecordedAt
	}
	r.last = s.RecordedAt
	r.samples++
}

func (r *Rate) Value() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.samples < 2 {
		return 0
	}
	elapsed := r.last.Sub(r.first).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(r.samples-1) / elapsed
}

func (r *Rate) Reset() {
	r.mu.Lock()
	r.first, r.last, r.samples = time.Time{}, time.Time{}, 0
	r.mu.Unlock()
}
