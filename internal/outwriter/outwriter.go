// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints ranked repository scores using the configured output format.
func (ow *OutWriter) WriteScores(results []schema.ScoredRepository, cfg *contract.Config, duration time.Duration) error {
	return WriteScoreResults(results, cfg, duration)
}

// WriteTraining prints a training run summary using the configured output format.
func (ow *OutWriter) WriteTraining(artifact *schema.ModelArtifact, artifactPath string, cfg *contract.Config, duration time.Duration) error {
	return WriteTrainingSummary(artifact, artifactPath, cfg, duration)
}

// WriteModels prints model registry rows using the configured output format.
func (ow *OutWriter) WriteModels(models []schema.ModelInfo, cfg *contract.Config) error {
	return WriteModelList(models, cfg)
}

// WriteFeedback exports labeled prediction records using the configured output format.
func (ow *OutWriter) WriteFeedback(records []schema.PredictionRecord, cfg *contract.Config) error {
	return WriteFeedbackExport(records, cfg)
}

// WriteDataset exports assembled training examples using the configured output format.
func (ow *OutWriter) WriteDataset(examples []schema.TrainingExample, cfg *contract.Config) error {
	return WriteDatasetExport(examples, cfg)
}

// WriteStatus prints prediction store health using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return WriteStoreStatus(status, cfg)
}
