package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-workshop/pkg/model"
)

func TestWeights(t *testing.T) {
	require.Equal(t, []int64{0, 1, 3, 6}, TriangularWeights(3))
	require.Equal(t, []int64{0, 1, 4, 9, 16}, QuadraticWeights(4))

	for k := 1; k <= 6; k++ {
		require.NoError(t, checkWeights(TriangularWeights(k), k))
		require.NoError(t, checkWeights(QuadraticWeights(k), k))
	}
}

func TestCheckWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []int64
		valid   bool
	}{
		{name: "convex", weights: []int64{0, 1, 3, 6}, valid: true},
		{name: "nonzero start", weights: []int64{1, 2, 4, 7}},
		{name: "flat", weights: []int64{0, 1, 1, 2}},
		{name: "linear", weights: []int64{0, 2, 4, 6}},
		{name: "concave", weights: []int64{0, 5, 8, 9}},
		{name: "short", weights: []int64{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkWeights(tt.weights, 3)
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidWeights)
		})
	}
}

func TestScore(t *testing.T) {
	m := model.Mapping{
		1: {10, 11, 12},
		2: {10},
		3: {},
		4: {10, 11},
	}

	require.Equal(t, int64(6+1+0+3), Score(m, TriangularWeights(3)))
	require.Equal(t, int64(9+1+0+4), Score(m, QuadraticWeights(3)))
	// Counts past the schedule use its last weight.
	require.Equal(t, int64(3+1+0+3), Score(m, TriangularWeights(2)))
	require.Zero(t, Score(model.Mapping{}, TriangularWeights(3)))
}

// Two students with one workshop each must score below one student with
// two and one with none.
func TestScore_FavoursConcentration(t *testing.T) {
	spread := model.Mapping{1: {10}, 2: {11}}
	packed := model.Mapping{1: {10, 11}, 2: {}}

	w := TriangularWeights(3)
	require.Greater(t, Score(packed, w), Score(spread, w))
}
