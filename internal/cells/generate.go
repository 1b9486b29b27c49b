package cells

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

const (
	MinValue = 1
	MaxValue = 100
)

// Shape selects how a generated array is arranged.
type Shape string

const (
	ShapeRandom   Shape = "random"
	ShapeSorted   Shape = "sorted"
	ShapeReversed Shape = "reversed"
)

// ParseShape accepts the names used by the CLI and config files.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case "", ShapeRandom:
		return ShapeRandom, nil
	case ShapeSorted, ShapeReversed:
		return Shape(s), nil
	}
	return "", fmt.Errorf("unknown shape: %s (available: random, sorted, reversed)", s)
}

// Random returns n values in [MinValue, MaxValue].
func Random(n int, rng *rand.Rand) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(MaxValue-MinValue+1) + MinValue
	}
	return out
}

// Seeded returns n values from a 32-bit linear congruential generator, so two
// panels built from the same seed start from identical arrays.
func Seeded(n int, seed int64) []int {
	t := uint64(seed) & 0xffffffff
	if t == 0 {
		t = 1
	}
	out := make([]int, n)
	for i := range out {
		t = (t*1664525 + 1013904223) % 4294967296
		out[i] = int(float64(t)/4294967296*MaxValue) + MinValue
	}
	return out
}

// Arrange reorders values in place according to shape.
func Arrange(values []int, shape Shape) []int {
	switch shape {
	case ShapeSorted:
		sort.Ints(values)
	case ShapeReversed:
		sort.Sort(sort.Reverse(sort.IntSlice(values)))
	}
	return values
}

// Generate builds an arranged array of n values. A zero seed draws fresh
// random values; any other seed is reproducible.
func Generate(n int, seed int64, shape Shape) []int {
	var values []int
	if seed == 0 {
		values = Random(n, rand.New(rand.NewSource(time.Now().UnixNano())))
	} else {
		values = Seeded(n, seed)
	}
	return Arrange(values, shape)
}
