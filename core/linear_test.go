package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTrainLinearConverges fits y = 2*x0 + 3 without noise and expects the
// parameters to land close to the generating line.
func TestTrainLinearConverges(t *testing.T) {
	var x [][]float64
	var y []float64
	for i := 0; i < 20; i++ {
		v := float64(i) / 10.0
		x = append(x, []float64{v})
		y = append(y, 2*v+3)
	}

	m := TrainLinear(x, y, LinearOptions{LearningRate: 0.05, Epochs: 1000, BatchSize: 4})
	require.Len(t, m.Weights, 1)
	assert.InDelta(t, 2.0, m.Weights[0], 0.1)
	assert.InDelta(t, 3.0, m.Bias, 0.1)
}

// TestTrainLinearZeroInit ensures parameters start at zero: a zero-epoch
// run must leave them untouched.
func TestTrainLinearZeroInit(t *testing.T) {
	x := [][]float64{{1, 2}, {3, 4}}
	y := []float64{1, 0}

	m := TrainLinear(x, y, LinearOptions{LearningRate: 0.01, Epochs: 1, BatchSize: 1})
	assert.Len(t, m.Weights, 2)

	// One example, one epoch, from zero: the first update is exactly lr*y*x.
	single := TrainLinear([][]float64{{2}}, []float64{0.5}, LinearOptions{LearningRate: 0.1, Epochs: 1, BatchSize: 1})
	assert.InDelta(t, 0.1*0.5*2, single.Weights[0], 1e-12)
	assert.InDelta(t, 0.1*0.5, single.Bias, 1e-12)
}

// TestTrainLinearDeterministic ensures identical inputs give identical fits.
func TestTrainLinearDeterministic(t *testing.T) {
	x := [][]float64{{0.1}, {0.5}, {0.9}}
	y := []float64{0.2, 0.6, 1.0}
	opts := LinearOptions{LearningRate: 0.01, Epochs: 50, BatchSize: 2}

	a := TrainLinear(x, y, opts)
	b := TrainLinear(x, y, opts)
	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.Bias, b.Bias)
}

// TestTrainLinearEmpty handles an empty matrix without panicking.
func TestTrainLinearEmpty(t *testing.T) {
	m := TrainLinear(nil, nil, LinearOptions{})
	assert.Empty(t, m.Weights)
	assert.Zero(t, m.Bias)
}

// TestComputeScaling checks min-max capture and row rescaling.
func TestComputeScaling(t *testing.T) {
	x := [][]float64{
		{0, 10, 5},
		{10, 20, 5},
		{5, 15, 5},
	}
	s := ComputeScaling(x)
	require.NotNil(t, s)
	assert.Equal(t, []float64{0, 10, 5}, s.Mins)
	assert.Equal(t, []float64{10, 20, 5}, s.Maxs)

	scaled := ScaleRow([]float64{5, 10, 5}, s)
	assert.Equal(t, []float64{0.5, 0.0, 0.0}, scaled) // constant column maps to 0

	assert.Nil(t, ComputeScaling(nil))
	row := []float64{1, 2}
	assert.Equal(t, row, ScaleRow(row, nil))
}
