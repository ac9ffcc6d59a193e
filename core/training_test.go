package core

import (
	"fmt"
	"testing"

	"github.com/beastmode/notable/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticExamples builds a deterministic example pool with varied feature
// bags and heuristic labels.
func syntheticExamples(n int) []schema.TrainingExample {
	examples := make([]schema.TrainingExample, n)
	for i := range examples {
		features := schema.FeatureBag{
			"stars":       float64(i * 500),
			"forks":       float64(i * 30),
			"openIssues":  float64(i % 7),
			"hasTests":    float64(i % 2),
			"hasCI":       float64((i + 1) % 2),
			"isActive":    1.0,
			"repoAgeDays": float64(100 + i*50),
		}
		examples[i] = schema.TrainingExample{
			Features: features,
			Quality:  Score(features),
			Repo:     fmt.Sprintf("org/repo-%d", i),
		}
	}
	return examples
}

// TestTrainLinearArtifact runs the full linear pipeline.
func TestTrainLinearArtifact(t *testing.T) {
	examples := syntheticExamples(40)
	artifact, err := Train(examples, TrainConfig{Algorithm: schema.LinearAlgorithm})
	require.NoError(t, err)

	assert.Equal(t, schema.LinearAlgorithm, artifact.Algorithm)
	assert.NotEmpty(t, artifact.FeatureNames)
	assert.Len(t, artifact.Weights, len(artifact.FeatureNames))
	assert.Empty(t, artifact.Trees)

	assert.Equal(t, 40, artifact.Metadata.DatasetSize)
	assert.Equal(t, 28, artifact.Metadata.TrainSize)
	assert.Equal(t, 6, artifact.Metadata.ValSize)
	assert.Equal(t, 6, artifact.Metadata.TestSize)
	assert.False(t, artifact.Metadata.TrainedAt.IsZero())

	require.NotNil(t, artifact.QualityStats)
	require.NotNil(t, artifact.Metrics.R2Val)
	require.NotNil(t, artifact.Metrics.R2Test)
}

// TestTrainForestArtifact runs the forest pipeline with importance output.
func TestTrainForestArtifact(t *testing.T) {
	examples := syntheticExamples(40)
	artifact, err := Train(examples, TrainConfig{
		Algorithm: schema.RandomForestAlgorithm,
		Trees:     5,
		Seed:      42,
	})
	require.NoError(t, err)

	assert.Equal(t, schema.RandomForestAlgorithm, artifact.Algorithm)
	assert.Len(t, artifact.Trees, 5)
	assert.Empty(t, artifact.Weights)
	assert.NotEmpty(t, artifact.FeatureImportance)
}

// TestTrainXGBoostFallsBack trains the placeholder as a forest.
func TestTrainXGBoostFallsBack(t *testing.T) {
	artifact, err := Train(syntheticExamples(20), TrainConfig{
		Algorithm: schema.XGBoostAlgorithm,
		Trees:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, schema.XGBoostAlgorithm, artifact.Algorithm)
	assert.Len(t, artifact.Trees, 3)
}

// TestTrainWithScaling persists the bounds it trained with.
func TestTrainWithScaling(t *testing.T) {
	artifact, err := Train(syntheticExamples(30), TrainConfig{
		Algorithm: schema.LinearAlgorithm,
		Scale:     true,
	})
	require.NoError(t, err)
	require.NotNil(t, artifact.Scaling)
	assert.Len(t, artifact.Scaling.Mins, len(artifact.FeatureNames))
	assert.Len(t, artifact.Scaling.Maxs, len(artifact.FeatureNames))
}

// TestTrainErrors covers rejection paths.
func TestTrainErrors(t *testing.T) {
	t.Run("too few examples", func(t *testing.T) {
		_, err := Train(syntheticExamples(3), TrainConfig{})
		assert.ErrorIs(t, err, ErrNotEnoughExamples)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := Train(syntheticExamples(20), TrainConfig{Algorithm: "perceptron"})
		assert.Error(t, err)
	})

	t.Run("no numeric features", func(t *testing.T) {
		examples := make([]schema.TrainingExample, 12)
		for i := range examples {
			examples[i] = schema.TrainingExample{
				Features: schema.FeatureBag{"name": "onlyStrings"},
				Quality:  0.5,
				Repo:     fmt.Sprintf("r%d", i),
			}
		}
		_, err := Train(examples, TrainConfig{})
		assert.Error(t, err)
	})
}

// TestTrainConstantLabelsDegenerate must not crash on a constant label set.
func TestTrainConstantLabelsDegenerate(t *testing.T) {
	examples := make([]schema.TrainingExample, 12)
	for i := range examples {
		examples[i] = schema.TrainingExample{
			Features: schema.FeatureBag{"stars": float64(i)},
			Quality:  0.5,
			Repo:     fmt.Sprintf("r%d", i),
		}
	}
	artifact, err := Train(examples, TrainConfig{Algorithm: schema.LinearAlgorithm})
	require.NoError(t, err)
	assert.True(t, artifact.Metrics.R2 == 1 || artifact.Metrics.R2 == -1)
}
