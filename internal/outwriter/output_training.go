package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/schema"
)

// WriteTrainingSummary outputs the results of a training run, dispatching
// based on the output format configured.
func WriteTrainingSummary(artifact *schema.ModelArtifact, artifactPath string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONTrainingSummary(w, artifact, artifactPath)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrainingText(artifact, artifactPath, duration, w)
		}, "Wrote summary")
	}
}

// writeTrainingText generates the human-readable training summary.
func writeTrainingText(artifact *schema.ModelArtifact, artifactPath string, duration time.Duration, writer io.Writer) error {
	meta := artifact.Metadata
	if _, err := fmt.Fprintf(writer, "Trained %s model on %d examples (%d features) in %v\n",
		artifact.Algorithm, meta.DatasetSize, meta.FeatureCount, duration); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Splits: train=%d val=%d test=%d\n",
		meta.TrainSize, meta.ValSize, meta.TestSize); err != nil {
		return err
	}

	m := artifact.Metrics
	if _, err := fmt.Fprintf(writer, "Train metrics: r2=%.4f mae=%.4f rmse=%.4f\n", m.R2, m.MAE, m.RMSE); err != nil {
		return err
	}
	if m.R2Val != nil {
		if _, err := fmt.Fprintf(writer, "Validation r2: %.4f\n", *m.R2Val); err != nil {
			return err
		}
	}
	if m.R2Test != nil {
		if _, err := fmt.Fprintf(writer, "Test r2: %.4f\n", *m.R2Test); err != nil {
			return err
		}
	}

	if stats := artifact.QualityStats; stats != nil {
		if _, err := fmt.Fprintf(writer, "Label distribution: high=%d medium=%d low=%d (mean=%s, std=%.4f)\n",
			stats.High, stats.Medium, stats.Low, formatQuality(stats.Mean), stats.Std); err != nil {
			return err
		}
	}

	if len(artifact.FeatureImportance) > 0 {
		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Feature", "Importance"})
		var data [][]string
		for _, fi := range artifact.FeatureImportance {
			data = append(data, []string{fi.Name, fmt.Sprintf("%.4f", fi.Importance)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if artifactPath != "" {
		if _, err := fmt.Fprintf(writer, "Artifact saved to %s\n", artifactPath); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONTrainingSummary writes the training summary in JSON format.
func writeJSONTrainingSummary(w io.Writer, artifact *schema.ModelArtifact, artifactPath string) error {
	type JSONTrainingSummary struct {
		Algorithm         schema.Algorithm           `json:"algorithm"`
		Metrics           schema.ArtifactMetrics     `json:"metrics"`
		QualityStats      *schema.QualityStats       `json:"qualityStats,omitempty"`
		FeatureImportance []schema.FeatureImportance `json:"featureImportance,omitempty"`
		Metadata          schema.ArtifactMetadata    `json:"metadata"`
		ArtifactPath      string                     `json:"artifactPath,omitempty"`
	}
	return writeJSON(w, JSONTrainingSummary{
		Algorithm:         artifact.Algorithm,
		Metrics:           artifact.Metrics,
		QualityStats:      artifact.QualityStats,
		FeatureImportance: artifact.FeatureImportance,
		Metadata:          artifact.Metadata,
		ArtifactPath:      artifactPath,
	})
}
