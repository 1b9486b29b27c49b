// Package bench runs sorting algorithms unpaced over many generated arrays
// and reports how many comparisons and swaps each one needed.
package bench

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/gate"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/step"
)

type Trial struct {
	Seed        int64
	Comparisons int
	Swaps       int
	Steps       int
	Elapsed     time.Duration
}

type Summary struct {
	Algorithm string
	Size      int
	Shape     cells.Shape
	Trials    []Trial

	MeanComparisons float64
	MeanSwaps       float64
	MinComparisons  int
	MaxComparisons  int
}

// Ensemble runs one algorithm over trials arrays seeded seedStart,
// seedStart+1, ... with seed 0 skipped.
type Ensemble struct {
	registry  *algorithms.Registry
	size      int
	shape     cells.Shape
	trials    int
	seedStart int64
}

func NewEnsemble(reg *algorithms.Registry, size int, shape cells.Shape, trials int, seedStart int64) *Ensemble {
	if reg == nil {
		reg = algorithms.NewRegistry()
	}
	return &Ensemble{registry: reg, size: size, shape: shape, trials: trials, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, algorithm string) (*Summary, error) {
	sorter, info, err := e.registry.Get(algorithm)
	if err != nil {
		return nil, err
	}
	if e.trials < 1 {
		return nil, fmt.Errorf("bench: trials must be positive, got %d", e.trials)
	}

	results := make([]Trial, e.trials)
	errs := make([]error, e.trials)

	var wg sync.WaitGroup
	for i := 0; i < e.trials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			seed := trialSeed(e.seedStart, idx)
			results[idx], errs[idx] = runTrial(ctx, sorter, cells.Generate(e.size, seed, e.shape))
			results[idx].Seed = seed
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s seed %d: %w", info.Key, trialSeed(e.seedStart, i), err)
		}
	}

	return summarize(info.Key, e.size, e.shape, results), nil
}

// trialSeed never returns 0, which cells.Generate reads as "seed from the
// clock".
func trialSeed(start int64, idx int) int64 {
	s := start + int64(idx)
	if start <= 0 && s >= 0 {
		s++
	}
	return s
}

func runTrial(ctx context.Context, sorter algorithms.Sorter, values []int) (Trial, error) {
	comparisons, swaps := metrics.NewComparisons(), metrics.NewSwaps()
	set := metrics.NewSet(comparisons, swaps)

	board := cells.NewBoard(values)
	hist := step.NewHistory(set)
	ctrl := gate.NewController(board, hist, gate.New(), gate.WithDelay(0))

	start := time.Now()
	if err := sorter(ctx, ctrl); err != nil {
		return Trial{}, err
	}
	if got := board.Values(); !slices.IsSorted(got) {
		return Trial{}, fmt.Errorf("result not sorted: %v", got)
	}

	return Trial{
		Comparisons: int(comparisons.Value()),
		Swaps:       int(swaps.Value()),
		Steps:       hist.Len(),
		Elapsed:     time.Since(start),
	}, nil
}

func summarize(algorithm string, size int, shape cells.Shape, trials []Trial) *Summary {
	s := &Summary{
		Algorithm:      algorithm,
		Size:           size,
		Shape:          shape,
		Trials:         trials,
		MinComparisons: trials[0].Comparisons,
		MaxComparisons: trials[0].Comparisons,
	}

	var cmp, swp int
	for _, t := range trials {
		cmp += t.Comparisons
		swp += t.Swaps
		s.MinComparisons = min(s.MinComparisons, t.Comparisons)
		s.MaxComparisons = max(s.MaxComparisons, t.Comparisons)
	}
	n := float64(len(trials))
	s.MeanComparisons = float64(cmp) / n
	s.MeanSwaps = float64(swp) / n
	return s
}
