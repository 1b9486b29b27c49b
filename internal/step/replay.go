package step

// Replay applies the swaps among steps[0..upto] to a copy of initial and
// returns the resulting values. upto < 0 yields the initial values.
func Replay(initial []int, steps []Step, upto int) []int {
	out := make([]int, len(initial))
	copy(out, initial)
	if upto >= len(steps) {
		upto = len(steps) - 1
	}
	for i := 0; i <= upto; i++ {
		s := steps[i]
		if s.Kind != KindSwap || !s.IndexA.Valid || !s.IndexB.Valid {
			continue
		}
		a, b := s.IndexA.Int, s.IndexB.Int
		if a < 0 || b < 0 || a >= len(out) || b >= len(out) {
			continue
		}
		out[a], out[b] = out[b], out[a]
	}
	return out
}

// Highlight returns the positions a step refers to.
func Highlight(s Step) []int {
	var idx []int
	if s.IndexA.Valid {
		idx = append(idx, s.IndexA.Int)
	}
	if s.IndexB.Valid {
		idx = append(idx, s.IndexB.Int)
	}
	return idx
}
