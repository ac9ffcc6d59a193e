// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/beastmode/notable/schema"
)

// PredictionStore defines the operations on the ml_predictions table.
// This allows the store layer to be mocked for testing.
type PredictionStore interface {
	// InsertPrediction persists a new prediction row and returns its ID.
	InsertPrediction(ctx context.Context, rec schema.PredictionRecord) (string, error)

	// ListUnlabeled returns recent predictions that have no actual_value yet.
	ListUnlabeled(ctx context.Context, limit int) ([]schema.PredictionRecord, error)

	// ListLabeled returns predictions that carry feedback.
	ListLabeled(ctx context.Context, limit int) ([]schema.PredictionRecord, error)

	// RecordOutcome attaches a feedback value and source to a prediction.
	RecordOutcome(ctx context.Context, id string, actual float64, source string, metadata map[string]any) error

	// GetStatus returns health and row counts for the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// ModelRegistry indexes trained model artifacts. The registry row, keyed by
// trained-at timestamp, decides which artifact is latest.
type ModelRegistry interface {
	// RegisterModel inserts a registry row for a persisted artifact.
	RegisterModel(ctx context.Context, info schema.ModelInfo) (int64, error)

	// LatestModel returns the most recently trained model, or nil when the
	// registry is empty.
	LatestModel(ctx context.Context) (*schema.ModelInfo, error)

	// ListModels returns all registered models, newest first.
	ListModels(ctx context.Context) ([]schema.ModelInfo, error)
}

// StoreManager hands out the shared store handles.
type StoreManager interface {
	GetPredictionStore() PredictionStore
	GetModelRegistry() ModelRegistry
}
