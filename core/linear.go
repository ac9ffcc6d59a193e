package core

import (
	"math"

	"github.com/beastmode/notable/internal/log"
	"github.com/beastmode/notable/schema"
)

// Default hyperparameters for the linear trainer.
const (
	DefaultLearningRate = 0.01
	DefaultEpochs       = 100
	DefaultBatchSize    = 32

	maeLogInterval = 20
)

// LinearOptions configures the gradient-descent linear trainer.
type LinearOptions struct {
	LearningRate float64
	Epochs       int
	BatchSize    int
}

func (o LinearOptions) withDefaults() LinearOptions {
	if o.LearningRate <= 0 {
		o.LearningRate = DefaultLearningRate
	}
	if o.Epochs <= 0 {
		o.Epochs = DefaultEpochs
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	return o
}

// LinearModel holds the trained parameters of the linear predictor.
type LinearModel struct {
	Weights []float64
	Bias    float64
}

// TrainLinear fits a linear model with mini-batch gradient descent. Weights
// and bias start at zero and receive additive per-example updates in batch
// order; there is no regularization or convergence check, the fixed epoch
// count always runs. MAE is logged every 20 epochs and on the last as a
// training diagnostic.
func TrainLinear(x [][]float64, y []float64, opts LinearOptions) *LinearModel {
	opts = opts.withDefaults()
	var featureCount int
	if len(x) > 0 {
		featureCount = len(x[0])
	}
	m := &LinearModel{Weights: make([]float64, featureCount)}

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for start := 0; start < len(x); start += opts.BatchSize {
			end := min(start+opts.BatchSize, len(x))
			for i := start; i < end; i++ {
				pred := m.Bias
				for k, xk := range x[i] {
					pred += m.Weights[k] * xk
				}
				diff := y[i] - pred
				for k, xk := range x[i] {
					m.Weights[k] += opts.LearningRate * diff * xk
				}
				m.Bias += opts.LearningRate * diff
			}
		}
		if epoch%maeLogInterval == 0 || epoch == opts.Epochs-1 {
			log.Debugf("linear epoch %d/%d mae=%.6f", epoch+1, opts.Epochs, m.meanAbsError(x, y))
		}
	}
	return m
}

func (m *LinearModel) meanAbsError(x [][]float64, y []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for i, row := range x {
		pred := m.Bias
		for k, xk := range row {
			pred += m.Weights[k] * xk
		}
		sum += math.Abs(y[i] - pred)
	}
	return sum / float64(len(x))
}

// ComputeScaling captures per-feature min/max bounds over the matrix so that
// the identical rescale can be reproduced at inference time.
func ComputeScaling(x [][]float64) *schema.FeatureScaling {
	if len(x) == 0 {
		return nil
	}
	cols := len(x[0])
	s := &schema.FeatureScaling{
		Mins: make([]float64, cols),
		Maxs: make([]float64, cols),
	}
	for j := 0; j < cols; j++ {
		s.Mins[j] = math.Inf(1)
		s.Maxs[j] = math.Inf(-1)
	}
	for _, row := range x {
		for j, v := range row {
			s.Mins[j] = math.Min(s.Mins[j], v)
			s.Maxs[j] = math.Max(s.Maxs[j], v)
		}
	}
	return s
}

// ScaleRow rescales one row into [0,1] per feature using captured bounds.
// Constant columns map to 0.
func ScaleRow(row []float64, s *schema.FeatureScaling) []float64 {
	if s == nil {
		return row
	}
	out := make([]float64, len(row))
	for j, v := range row {
		if j >= len(s.Mins) {
			break
		}
		span := s.Maxs[j] - s.Mins[j]
		if span > 0 {
			out[j] = (v - s.Mins[j]) / span
		}
	}
	return out
}

// ScaleMatrix applies ScaleRow to every row, returning a new matrix.
func ScaleMatrix(x [][]float64, s *schema.FeatureScaling) [][]float64 {
	if s == nil {
		return x
	}
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = ScaleRow(row, s)
	}
	return out
}
