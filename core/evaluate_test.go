package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEvaluate covers normal and degenerate label sets.
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		predicted  []float64
		actual     []float64
		r2         float64
		mae        float64
		degenerate bool
	}{
		{
			name:      "perfect fit",
			predicted: []float64{0.1, 0.5, 0.9},
			actual:    []float64{0.1, 0.5, 0.9},
			r2:        1.0,
			mae:       0.0,
		},
		{
			name:      "mean predictor scores zero",
			predicted: []float64{0.5, 0.5, 0.5},
			actual:    []float64{0.0, 0.5, 1.0},
			r2:        0.0,
			mae:       1.0 / 3.0,
		},
		{
			name:       "constant labels perfect residuals",
			predicted:  []float64{0.5, 0.5, 0.5},
			actual:     []float64{0.5, 0.5, 0.5},
			r2:         1.0,
			mae:        0.0,
			degenerate: true,
		},
		{
			name:       "constant labels with residuals",
			predicted:  []float64{0.4, 0.6, 0.5},
			actual:     []float64{0.5, 0.5, 0.5},
			r2:         -1.0,
			mae:        0.2 / 3.0,
			degenerate: true,
		},
		{
			name:       "empty input",
			predicted:  nil,
			actual:     nil,
			degenerate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Evaluate(tt.predicted, tt.actual)
			assert.InDelta(t, tt.r2, m.R2, 0.0001)
			assert.InDelta(t, tt.mae, m.MAE, 0.0001)
			assert.Equal(t, tt.degenerate, m.Degenerate)
		})
	}
}

// TestEvaluateRMSE checks rmse is the root of mse.
func TestEvaluateRMSE(t *testing.T) {
	m := Evaluate([]float64{0.0, 1.0}, []float64{1.0, 0.0})
	assert.InDelta(t, 1.0, m.MSE, 0.0001)
	assert.InDelta(t, 1.0, m.RMSE, 0.0001)
	assert.InDelta(t, 1.0, m.MAE, 0.0001)
}
