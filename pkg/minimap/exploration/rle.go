package exploration

import "fmt"

// Compress packs levels into flat (endIndex, value) pairs in row-major order.
// endIndex is exclusive; the final pair always ends at len(values).
// An empty input encodes as [0, 0].
func Compress(values []uint8) []int {
	if len(values) == 0 {
		return []int{0, 0}
	}
	n := len(values)
	runs := []int{n, int(values[0])}
	for i := 1; i < n; i++ {
		if int(values[i]) != runs[len(runs)-1] {
			runs[len(runs)-2] = i
			runs = append(runs, n, int(values[i]))
		}
	}
	return runs
}

// Decompress expands pairs produced by Compress into size levels.
func Decompress(runs []int, size int) ([]uint8, error) {
	if err := validateRuns(runs, size); err != nil {
		return nil, err
	}
	out := make([]uint8, size)
	start := 0
	for i := 0; i < len(runs); i += 2 {
		end, v := runs[i], uint8(runs[i+1])
		for j := start; j < end; j++ {
			out[j] = v
		}
		start = end
	}
	return out, nil
}

func validateRuns(runs []int, size int) error {
	if len(runs) == 0 || len(runs)%2 != 0 {
		return fmt.Errorf("%w: %d values", ErrMalformedRuns, len(runs))
	}
	prev := 0
	for i := 0; i < len(runs); i += 2 {
		end, v := runs[i], runs[i+1]
		if v < 0 || v > MaxLevel {
			return fmt.Errorf("%w: level %d at pair %d", ErrMalformedRuns, v, i/2)
		}
		if end < prev || (end == prev && size > 0) {
			return fmt.Errorf("%w: end %d after %d", ErrMalformedRuns, end, prev)
		}
		prev = end
	}
	if prev != size {
		return fmt.Errorf("%w: runs cover %d of %d tiles", ErrMalformedRuns, prev, size)
	}
	return nil
}
