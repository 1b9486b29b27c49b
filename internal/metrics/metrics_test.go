package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/sortviz/internal/step"
)

func TestCounters(t *testing.T) {
	set := Default()
	h := step.NewHistory(set)

	h.Record(step.Info("Starting Bubble Sort..."))
	h.Record(step.Comparison(0, 1, 5, 3))
	h.Record(step.Swap(0, 1, 5, 3))
	h.Record(step.Comparison(1, 2, 5, 8))
	h.Record(step.Milestone("Sorting completed!"))

	vals := set.Values()
	if vals["comparisons"] != 2 {
		t.Errorf("expected 2 comparisons, got %f", vals["comparisons"])
	}
	if vals["swaps"] != 1 {
		t.Errorf("expected 1 swap, got %f", vals["swaps"])
	}
	if vals["milestones"] != 1 {
		t.Errorf("expected 1 milestone, got %f", vals["milestones"])
	}

	set.Reset()
	if set.Values()["comparisons"] != 0 {
		t.Error("expected zero after reset")
	}
}

func TestRate(t *testing.T) {
	r := NewRate()
	base := time.Unix(1000, 0)

	r.Observe(step.Step{Kind: step.KindComparison, RecordedAt: base})
	if r.Value() != 0 {
		t.Error("expected zero rate with a single sample")
	}
	r.Observe(step.Step{Kind: step.KindInfo, RecordedAt: base.Add(time.Hour)})
	r.Observe(step.Step{Kind: step.KindSwap, RecordedAt: base.Add(500 * time.Millisecond)})
	r.Observe(step.Step{Kind: step.KindComparison, RecordedAt: base.Add(time.Second)})

	if got := r.Value(); math.Abs(got-2) > 1e-9 {
		t.Errorf("expected 2 steps/sec, got %f", got)
	}

	r.Reset()
	if r.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSetNames(t *testing.T) {
	names := Default().Names()
	want := []string{"comparisons", "swaps", "milestones", "steps_per_sec"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, names[i], want[i])
		}
	}
}
