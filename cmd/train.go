package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/log"
	"github.com/beastmode/notable/internal/outwriter"
	"github.com/beastmode/notable/schema"
)

// trainCmd trains a quality prediction model from scan data and feedback.
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a quality prediction model from scan data.",
	Long: `Assemble a training dataset from scanned repository files and train
a quality prediction model.

Labels come from the heuristic score, except where the prediction store
holds feedback for a repository; feedback always wins. The trained
artifact is written to the models directory and registered in the model
registry so later predict runs can find it.

Examples:
  # Train the default linear model
  notable train

  # Train a random forest with custom hyperparameters
  notable train --algorithm random-forest --trees 20 --max-depth 8

  # Train with feature scaling and a fixed seed
  notable train --scale --seed 42`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runTrain(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run training", err)
		}
	},
}

// runTrain assembles the dataset, trains, persists, and registers a model.
func runTrain(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	records, err := loadScanRecords(ctx, cfg)
	if err != nil {
		return err
	}

	feedback, err := loadFeedbackLabels(ctx, cfg)
	if err != nil {
		return err
	}

	examples := core.AssembleExamples(records, feedback)
	artifact, err := core.Train(examples, core.TrainConfig{
		Algorithm:    cfg.Algorithm,
		LearningRate: cfg.LearningRate,
		Epochs:       cfg.Epochs,
		BatchSize:    cfg.BatchSize,
		Trees:        cfg.Trees,
		MaxDepth:     cfg.MaxDepth,
		MinSamples:   cfg.MinSamples,
		Scale:        cfg.Scale,
		Seed:         cfg.Seed,
	})
	if err != nil {
		return err
	}

	artifactPath, err := core.SaveArtifact(cfg.ModelsDir, artifact)
	if err != nil {
		return err
	}

	if registry := storeManager.GetModelRegistry(); registry != nil {
		info := schema.ModelInfo{
			Algorithm:    artifact.Algorithm,
			TrainedAt:    artifact.Metadata.TrainedAt,
			DatasetSize:  artifact.Metadata.DatasetSize,
			FeatureCount: artifact.Metadata.FeatureCount,
			R2:           artifact.Metrics.R2,
			MAE:          artifact.Metrics.MAE,
			RMSE:         artifact.Metrics.RMSE,
			ArtifactPath: artifactPath,
		}
		if _, err := registry.RegisterModel(ctx, info); err != nil {
			return err
		}
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteTraining(artifact, artifactPath, cfg, time.Since(start))
}

// loadFeedbackLabels maps repository names to their labeled feedback values.
// When a repository has multiple labeled predictions the newest wins.
func loadFeedbackLabels(ctx context.Context, cfg *contract.Config) (map[string]float64, error) {
	store := storeManager.GetPredictionStore()
	if store == nil {
		return nil, nil
	}

	labeled, err := store.ListLabeled(ctx, cfg.FeedbackLimit)
	if err != nil {
		return nil, err
	}

	feedback := make(map[string]float64)
	for _, rec := range labeled {
		if rec.Context.Repo == "" || rec.ActualValue == nil {
			continue
		}
		if cfg.RealOnly && !core.IsReal(rec) {
			continue
		}
		// Records arrive newest first; keep the first value per repo.
		if _, ok := feedback[rec.Context.Repo]; !ok {
			feedback[rec.Context.Repo] = *rec.ActualValue
		}
	}
	if len(feedback) > 0 {
		log.Debugf("adopting %d feedback labels from the prediction store", len(feedback))
	}
	return feedback, nil
}
