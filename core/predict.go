package core

import (
	"errors"
	"math"

	"github.com/beastmode/notable/schema"
)

// ErrEmptyModel reports an artifact with neither weights nor trees.
var ErrEmptyModel = errors.New("model artifact has no trained parameters")

// Predict runs inference for a raw feature bag against a persisted model.
// The input is normalized, projected positionally through the artifact's
// stored feature names (never a recomputed list), rescaled when the artifact
// carries scaling bounds, and clamped to the canonical [0,1] range. Features
// absent from the input default to 0, never an error.
func Predict(artifact *schema.ModelArtifact, features schema.FeatureBag) (float64, error) {
	row := inferenceRow(artifact, features)
	switch {
	case len(artifact.Trees) > 0:
		return clamp01(PredictForest(artifact.Trees, row)), nil
	case len(artifact.Weights) > 0:
		m := &LinearModel{Weights: artifact.Weights, Bias: artifact.Bias}
		return clamp01(PredictLinear(m, row)), nil
	default:
		return 0, ErrEmptyModel
	}
}

// Confidence estimates how much to trust a prediction: forest models report
// agreement between trees, linear models a flat default.
func Confidence(artifact *schema.ModelArtifact, features schema.FeatureBag) float64 {
	if len(artifact.Trees) == 0 {
		return 0.5
	}
	row := inferenceRow(artifact, features)
	spread := math.Sqrt(ForestVariance(artifact.Trees, row))
	return clamp01(1 - spread*2)
}

func inferenceRow(artifact *schema.ModelArtifact, features schema.FeatureBag) []float64 {
	row := Row(Normalize(features), artifact.FeatureNames)
	return ScaleRow(row, artifact.Scaling)
}

// PredictLinear evaluates the linear model for one projected row.
func PredictLinear(m *LinearModel, row []float64) float64 {
	pred := m.Bias
	for k, xk := range row {
		if k >= len(m.Weights) {
			break
		}
		pred += m.Weights[k] * xk
	}
	return pred
}

// PredictTree descends one regression tree: left when the row value is at or
// below the threshold, right otherwise, until a leaf.
func PredictTree(node *schema.TreeNode, row []float64) float64 {
	for node != nil && node.Type == schema.SplitNode {
		v := 0.0
		if node.FeatureIdx >= 0 && node.FeatureIdx < len(row) {
			v = row[node.FeatureIdx]
		}
		if v <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	return node.Value
}

// PredictForest averages the predictions of all trees.
func PredictForest(trees []*schema.TreeNode, row []float64) float64 {
	if len(trees) == 0 {
		return 0
	}
	var sum float64
	for _, tree := range trees {
		sum += PredictTree(tree, row)
	}
	return sum / float64(len(trees))
}
