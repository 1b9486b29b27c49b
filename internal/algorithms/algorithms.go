package algorithms

import "context"

// Ops is everything an algorithm may do to the array. Compare and Swap are
// the only ways to observe or change values.
type Ops interface {
	Len() int
	Compare(ctx context.Context, i, j int) (bool, error)
	Swap(ctx context.Context, i, j int) error
	Mark(i int)
	MarkSpecial(i int)
	Unmark(i int)
	MarkDone(i int)
	MarkAllDone()
	LogStart(name string)
	LogArrayState()
}

// Sorter sorts the array behind ops in ascending order.
type Sorter func(ctx context.Context, ops Ops) error

func Bubble(ctx context.Context, ops Ops) error {
	ops.LogStart("Bubble Sort")
	ops.LogArrayState()
	n := ops.Len()
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			ops.Mark(j)
			ops.Mark(j + 1)
			gt, err := ops.Compare(ctx, j, j+1)
			if err != nil {
				return err
			}
			if gt {
				if err := ops.Swap(ctx, j, j+1); err != nil {
					return err
				}
				swapped = true
			}
			ops.Unmark(j)
			ops.Unmark(j + 1)
		}
		ops.MarkDone(n - i - 1)
		if !swapped {
			break
		}
	}
	ops.MarkAllDone()
	return nil
}

func Selection(ctx context.Context, ops Ops) error {
	ops.LogStart("Selection Sort")
	ops.LogArrayState()
	n := ops.Len()
	for i := 0; i < n-1; i++ {
		min := i
		ops.MarkSpecial(min)
		for j := i + 1; j < n; j++ {
			ops.Mark(j)
			gt, err := ops.Compare(ctx, min, j)
			if err != nil {
				return err
			}
			if gt {
				ops.Unmark(min)
				min = j
				ops.MarkSpecial(min)
			} else {
				ops.Unmark(j)
			}
		}
		if min != i {
			if err := ops.Swap(ctx, i, min); err != nil {
				return err
			}
		}
		ops.Unmark(min)
		ops.MarkDone(i)
	}
	ops.MarkAllDone()
	return nil
}

func Insertion(ctx context.Context, ops Ops) error {
	ops.LogStart("Insertion Sort")
	ops.LogArrayState()
	n := ops.Len()
	for i := 1; i < n; i++ {
		ops.MarkSpecial(i)
		for j := i; j > 0; j-- {
			ops.Mark(j - 1)
			gt, err := ops.Compare(ctx, j-1, j)
			if err != nil {
				return err
			}
			ops.Unmark(j - 1)
			if !gt {
				break
			}
			if err := ops.Swap(ctx, j-1, j); err != nil {
				return err
			}
		}
		ops.Unmark(i)
	}
	ops.MarkAllDone()
	return nil
}

// Merge is a stable top-down merge sort. Merging happens in place by
// rotating each out-of-order element left with adjacent swaps.
func Merge(ctx context.Context, ops Ops) error {
	ops.LogStart("Merge Sort")
	ops.LogArrayState()
	if err := mergeSort(ctx, ops, 0, ops.Len()); err != nil {
		return err
	}
	ops.MarkAllDone()
	return nil
}

func mergeSort(ctx context.Context, ops Ops, lo, hi int) error {
	if hi-lo < 2 {
		return nil
	}
	mid := lo + (hi-lo)/2
	if err := mergeSort(ctx, ops, lo, mid); err != nil {
		return err
	}
	if err := mergeSort(ctx, ops, mid, hi); err != nil {
		return err
	}
	return merge(ctx, ops, lo, mid, hi)
}

func merge(ctx context.Context, ops Ops, lo, mid, hi int) error {
	i, j := lo, mid
	for i < j && j < hi {
		ops.Mark(i)
		ops.Mark(j)
		gt, err := ops.Compare(ctx, i, j)
		ops.Unmark(i)
		ops.Unmark(j)
		if err != nil {
			return err
		}
		if !gt {
			i++
			continue
		}
		for k := j; k > i; k-- {
			if err := ops.Swap(ctx, k-1, k); err != nil {
				return err
			}
		}
		i++
		j++
	}
	return nil
}

// Quick uses Lomuto partitioning with the last element as pivot.
func Quick(ctx context.Context, ops Ops) error {
	ops.LogStart("Quick Sort")
	ops.LogArrayState()
	if err := quickSort(ctx, ops, 0, ops.Len()-1); err != nil {
		return err
	}
	ops.MarkAllDone()
	return nil
}

func quickSort(ctx context.Context, ops Ops, lo, hi int) error {
	if lo > hi {
		return nil
	}
	if lo == hi {
		ops.MarkDone(lo)
		return nil
	}
	p, err := partition(ctx, ops, lo, hi)
	if err != nil {
		return err
	}
	if err := quickSort(ctx, ops, lo, p-1); err != nil {
		return err
	}
	return quickSort(ctx, ops, p+1, hi)
}

func partition(ctx context.Context, ops Ops, lo, hi int) (int, error) {
	ops.MarkSpecial(hi)
	i := lo
	for j := lo; j < hi; j++ {
		ops.Mark(j)
		gt, err := ops.Compare(ctx, hi, j)
		if err != nil {
			return 0, err
		}
		if gt {
			if i != j {
				if err := ops.Swap(ctx, i, j); err != nil {
					return 0, err
				}
			}
			i++
		}
		ops.Unmark(j)
	}
	if i != hi {
		if err := ops.Swap(ctx, i, hi); err != nil {
			return 0, err
		}
	}
	ops.Unmark(hi)
	ops.MarkDone(i)
	return i, nil
}
