package mapper

import (
	"fmt"

	"github.com/rhyrak/go-workshop/pkg/model"
)

// TriangularWeights returns 0, 1, 3, 6, ... for 0..k assignments.
func TriangularWeights(k int) []int64 {
	w := make([]int64, k+1)
	for n := range w {
		w[n] = int64(n * (n + 1) / 2)
	}
	return w
}

// QuadraticWeights returns 0, 1, 4, 9, ... for 0..k assignments.
func QuadraticWeights(k int) []int64 {
	w := make([]int64, k+1)
	for n := range w {
		w[n] = int64(n * n)
	}
	return w
}

func checkWeights(w []int64, k int) error {
	if len(w) != k+1 {
		return fmt.Errorf("%w: need %d weights for 0..%d assignments, got %d", ErrInvalidWeights, k+1, k, len(w))
	}
	if w[0] != 0 {
		return fmt.Errorf("%w: weight for 0 assignments is %d", ErrInvalidWeights, w[0])
	}
	for n := 1; n < len(w); n++ {
		step := w[n] - w[n-1]
		if step <= 0 {
			return fmt.Errorf("%w: weight %d is not above weight %d", ErrInvalidWeights, n, n-1)
		}
		if n > 1 && step <= w[n-1]-w[n-2] {
			return fmt.Errorf("%w: step to %d assignments is not larger than the previous step", ErrInvalidWeights, n)
		}
	}
	return nil
}

// Score sums the weight of every student's assignment count.
// Counts beyond the schedule are clamped to its last entry.
func Score(mapping model.Mapping, weights []int64) int64 {
	var total int64
	for _, ids := range mapping {
		total += weightOf(weights, len(ids))
	}
	return total
}

func scoreCounts(assigned [][]int, weights []int64) int64 {
	var total int64
	for _, ws := range assigned {
		total += weightOf(weights, len(ws))
	}
	return total
}

func weightOf(weights []int64, n int) int64 {
	if len(weights) == 0 {
		return 0
	}
	return weights[min(n, len(weights)-1)]
}
