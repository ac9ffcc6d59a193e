package core

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beastmode/notable/internal/log"
	"github.com/beastmode/notable/schema"
)

// MinTrainingExamples is the smallest pool a training run accepts.
const MinTrainingExamples = 10

// ErrNotEnoughExamples reports a pool below MinTrainingExamples.
var ErrNotEnoughExamples = errors.New("not enough training examples")

// TrainConfig holds one training run's algorithm choice and hyperparameters.
type TrainConfig struct {
	Algorithm    schema.Algorithm
	LearningRate float64
	Epochs       int
	BatchSize    int
	Trees        int
	MaxDepth     int
	MinSamples   int
	Scale        bool
	Seed         int64
}

// Train runs the full pipeline over an assembled example pool: fixed
// 70/15/15 split, feature schema derivation, model fitting, evaluation on
// all three splits, and artifact construction. The returned artifact is
// complete and immutable; persisting it is the caller's concern.
func Train(examples []schema.TrainingExample, cfg TrainConfig) (*schema.ModelArtifact, error) {
	if len(examples) < MinTrainingExamples {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughExamples, len(examples), MinTrainingExamples)
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = schema.LinearAlgorithm
	}
	if _, ok := schema.ValidAlgorithms[cfg.Algorithm]; !ok {
		return nil, fmt.Errorf("unknown algorithm %q", cfg.Algorithm)
	}

	names := FeatureNames(examples)
	if len(names) == 0 {
		return nil, errors.New("no numeric features in training data")
	}
	stats := Stats(examples)
	ds := Split(examples)

	trainX, trainY := Matrix(ds.Train, names)
	valX, valY := Matrix(ds.Val, names)
	testX, testY := Matrix(ds.Test, names)

	artifact := &schema.ModelArtifact{
		Algorithm:    cfg.Algorithm,
		FeatureNames: names,
		QualityStats: &stats,
		Metadata: schema.ArtifactMetadata{
			TrainedAt:    time.Now().UTC(),
			DatasetSize:  len(examples),
			FeatureCount: len(names),
			TrainSize:    len(ds.Train),
			ValSize:      len(ds.Val),
			TestSize:     len(ds.Test),
		},
	}

	switch cfg.Algorithm {
	case schema.LinearAlgorithm:
		if cfg.Scale {
			artifact.Scaling = ComputeScaling(trainX)
			trainX = ScaleMatrix(trainX, artifact.Scaling)
			valX = ScaleMatrix(valX, artifact.Scaling)
			testX = ScaleMatrix(testX, artifact.Scaling)
		}
		m := TrainLinear(trainX, trainY, LinearOptions{
			LearningRate: cfg.LearningRate,
			Epochs:       cfg.Epochs,
			BatchSize:    cfg.BatchSize,
		})
		artifact.Weights = m.Weights
		artifact.Bias = m.Bias
	default:
		if cfg.Algorithm == schema.XGBoostAlgorithm {
			log.Warnf("xgboost is a placeholder, training a random forest instead")
		}
		trees := TrainForest(trainX, trainY, ForestOptions{
			Trees:      cfg.Trees,
			MaxDepth:   cfg.MaxDepth,
			MinSamples: cfg.MinSamples,
			Rand:       rand.New(rand.NewSource(cfg.Seed)),
		})
		artifact.Trees = trees
		artifact.FeatureImportance = FeatureImportances(trees, names)
	}

	trainMetrics := evaluateRows(artifact, trainX, trainY)
	if trainMetrics.Degenerate {
		log.Warnf("training labels are constant, r2 is not meaningful")
	}
	artifact.Metrics = schema.ArtifactMetrics{
		R2:   trainMetrics.R2,
		MAE:  trainMetrics.MAE,
		RMSE: trainMetrics.RMSE,
	}
	if len(valX) > 0 {
		r2 := evaluateRows(artifact, valX, valY).R2
		artifact.Metrics.R2Val = &r2
	}
	if len(testX) > 0 {
		r2 := evaluateRows(artifact, testX, testY).R2
		artifact.Metrics.R2Test = &r2
	}

	log.Infof("trained %s model on %d examples (%d features): r2=%.4f mae=%.4f",
		cfg.Algorithm, len(examples), len(names), artifact.Metrics.R2, artifact.Metrics.MAE)
	return artifact, nil
}

// evaluateRows scores pre-projected (and pre-scaled) rows against labels.
func evaluateRows(artifact *schema.ModelArtifact, x [][]float64, y []float64) schema.EvalMetrics {
	preds := make([]float64, len(x))
	for i, row := range x {
		if len(artifact.Trees) > 0 {
			preds[i] = PredictForest(artifact.Trees, row)
		} else {
			m := &LinearModel{Weights: artifact.Weights, Bias: artifact.Bias}
			preds[i] = PredictLinear(m, row)
		}
	}
	return Evaluate(preds, y)
}
