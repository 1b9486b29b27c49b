package bench

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/gate"
)

func TestEnsembleSortedInput(t *testing.T) {
	e := NewEnsemble(nil, 10, cells.ShapeSorted, 4, 1)
	sum, err := e.Run(context.Background(), "bubble")
	if err != nil {
		t.Fatal(err)
	}
	if len(sum.Trials) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(sum.Trials))
	}
	for i, tr := range sum.Trials {
		if tr.Seed != int64(1+i) {
			t.Errorf("trial %d: seed %d", i, tr.Seed)
		}
		if tr.Comparisons != 9 || tr.Swaps != 0 {
			t.Errorf("trial %d: %d comparisons, %d swaps", i, tr.Comparisons, tr.Swaps)
		}
	}
	if sum.MeanComparisons != 9 || sum.MeanSwaps != 0 {
		t.Errorf("unexpected means %v/%v", sum.MeanComparisons, sum.MeanSwaps)
	}
}

func TestEnsembleAllAlgorithms(t *testing.T) {
	reg := algorithms.NewRegistry()
	for _, name := range reg.Names() {
		sum, err := NewEnsemble(reg, 25, cells.ShapeRandom, 3, 7).Run(context.Background(), name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if sum.Algorithm != name {
			t.Errorf("expected %s, got %s", name, sum.Algorithm)
		}
		if float64(sum.MinComparisons) > sum.MeanComparisons || sum.MeanComparisons > float64(sum.MaxComparisons) {
			t.Errorf("%s: mean %v outside [%d, %d]", name, sum.MeanComparisons, sum.MinComparisons, sum.MaxComparisons)
		}
	}
}

func TestEnsembleDeterministic(t *testing.T) {
	a, err := NewEnsemble(nil, 30, cells.ShapeRandom, 2, 42).Run(context.Background(), "quick")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEnsemble(nil, 30, cells.ShapeRandom, 2, 42).Run(context.Background(), "quick")
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Trials {
		if a.Trials[i].Comparisons != b.Trials[i].Comparisons || a.Trials[i].Swaps != b.Trials[i].Swaps {
			t.Errorf("trial %d differs between runs", i)
		}
	}
}

func TestEnsembleErrors(t *testing.T) {
	if _, err := NewEnsemble(nil, 10, cells.ShapeRandom, 1, 1).Run(context.Background(), "bogo"); !errors.Is(err, algorithms.ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
	if _, err := NewEnsemble(nil, 10, cells.ShapeRandom, 0, 1).Run(context.Background(), "bubble"); err == nil {
		t.Error("expected error for zero trials")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEnsemble(nil, 10, cells.ShapeRandom, 2, 1).Run(ctx, "bubble")
	if !gate.IsCancelled(err) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestTrialSeedSkipsZero(t *testing.T) {
	cases := []struct {
		start int64
		want  []int64
	}{
		{1, []int64{1, 2, 3}},
		{0, []int64{1, 2, 3}},
		{-2, []int64{-2, -1, 1}},
		{-5, []int64{-5, -4, -3}},
	}
	for _, tc := range cases {
		for i, want := range tc.want {
			if got := trialSeed(tc.start, i); got != want {
				t.Errorf("trialSeed(%d, %d) = %d, want %d", tc.start, i, got, want)
			}
		}
	}
}

func TestEnsembleAcrossZeroIsReproducible(t *testing.T) {
	a, err := NewEnsemble(nil, 30, cells.ShapeRandom, 3, -2).Run(context.Background(), "insertion")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEnsemble(nil, 30, cells.ShapeRandom, 3, -2).Run(context.Background(), "insertion")
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Trials {
		if a.Trials[i].Seed == 0 {
			t.Errorf("trial %d ran with seed 0", i)
		}
		if a.Trials[i].Seed != b.Trials[i].Seed || a.Trials[i].Comparisons != b.Trials[i].Comparisons {
			t.Errorf("trial %d differs between runs", i)
		}
	}
}
