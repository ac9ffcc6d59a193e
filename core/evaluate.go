package core

import (
	"math"

	"github.com/beastmode/notable/schema"
)

// Evaluate computes standard regression metrics for predictions against
// labels. A constant label set makes R2 undefined (SStot=0); instead of
// dividing by zero the metric falls back to 1 when residuals are also zero
// and -1 otherwise, with Degenerate set so callers can warn.
func Evaluate(predicted, actual []float64) schema.EvalMetrics {
	var m schema.EvalMetrics
	n := len(actual)
	if n == 0 || len(predicted) != n {
		m.Degenerate = true
		return m
	}

	var mean float64
	for _, y := range actual {
		mean += y
	}
	mean /= float64(n)

	var absSum, sqSum, ssTot float64
	for i, y := range actual {
		diff := y - predicted[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		dm := y - mean
		ssTot += dm * dm
	}

	m.MAE = absSum / float64(n)
	m.MSE = sqSum / float64(n)
	m.RMSE = math.Sqrt(m.MSE)

	ssRes := sqSum
	switch {
	case ssTot > 0:
		m.R2 = 1 - ssRes/ssTot
	case ssRes == 0:
		m.R2 = 1
		m.Degenerate = true
	default:
		m.R2 = -1
		m.Degenerate = true
	}
	return m
}
