package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/log"
	"github.com/beastmode/notable/schema"
)

// predictCmd predicts repository quality with a trained model.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict repository quality with a trained model.",
	Long: `Predict the quality of a repository using a trained model artifact.

The model is resolved from --model when given, otherwise the latest
registered model is used. Features come from --features JSON, or from
the scan data when --repo names a scanned repository. Every prediction
is recorded in the prediction store so feedback can be attached later.

Examples:
  # Predict a repository from the scan data
  notable predict --repo octocat/hello-world

  # Predict from inline features
  notable predict --features '{"stars":1200,"forks":300,"hasReadme":true}'

  # Predict with a specific artifact
  notable predict --repo octocat/hello-world --model ./models/model-linear.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runPredict(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run prediction", err)
		}
	},
}

// runPredict resolves the model and features, predicts, and records the result.
func runPredict(ctx context.Context, cfg *contract.Config) error {
	artifact, artifactPath, err := resolveModel(ctx, cfg)
	if err != nil {
		return err
	}

	repo, features, err := resolveFeatures(ctx, cfg)
	if err != nil {
		return err
	}

	quality, err := core.Predict(artifact, features)
	if err != nil {
		return err
	}
	confidence := core.Confidence(artifact, features)

	if store := storeManager.GetPredictionStore(); store != nil {
		rec := schema.PredictionRecord{
			PredictedValue: quality,
			Source:         "api",
			Context: schema.PredictionContext{
				Repo:     repo,
				Features: features,
				Source:   "api",
				Metadata: map[string]any{"model": artifactPath},
			},
		}
		id, err := store.InsertPrediction(ctx, rec)
		if err != nil {
			return err
		}
		log.Debugf("recorded prediction %s", id)
	}

	fmt.Printf("Repository: %s\n", repo)
	fmt.Printf("Quality:    %s (%s)\n", contract.FormatPercent(quality), contract.GetPlainLabel(quality))
	fmt.Printf("Confidence: %s\n", contract.FormatPercent(confidence))
	fmt.Printf("Model:      %s (%s)\n", artifact.Algorithm, artifactPath)
	return nil
}

// resolveModel loads the model artifact from the explicit path or the registry.
func resolveModel(ctx context.Context, cfg *contract.Config) (*schema.ModelArtifact, string, error) {
	path := cfg.ModelPath
	if path == "" {
		registry := storeManager.GetModelRegistry()
		if registry == nil {
			return nil, "", fmt.Errorf("no --model path given and no model registry configured")
		}
		latest, err := registry.LatestModel(ctx)
		if err != nil {
			return nil, "", err
		}
		if latest == nil {
			return nil, "", fmt.Errorf("no trained models registered. Run 'notable train' first")
		}
		path = latest.ArtifactPath
	}

	artifact, err := core.LoadArtifact(path)
	if err != nil {
		return nil, "", err
	}
	return artifact, path, nil
}

// resolveFeatures returns the repo name and feature bag for prediction.
func resolveFeatures(ctx context.Context, cfg *contract.Config) (string, schema.FeatureBag, error) {
	if cfg.FeaturesJSON != "" {
		var features schema.FeatureBag
		if err := json.Unmarshal([]byte(cfg.FeaturesJSON), &features); err != nil {
			return "", nil, fmt.Errorf("--features must be a JSON object: %w", err)
		}
		return cfg.Repo, features, nil
	}

	if cfg.Repo == "" {
		return "", nil, fmt.Errorf("either --repo or --features is required")
	}

	records, err := loadScanRecords(ctx, cfg)
	if err != nil {
		return "", nil, err
	}
	for _, rec := range records {
		if rec.Key() == cfg.Repo {
			return cfg.Repo, rec.Features, nil
		}
	}
	return "", nil, fmt.Errorf("repository %q not found in scan data under %s", cfg.Repo, cfg.DataDir)
}
