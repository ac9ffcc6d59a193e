// Package parquet provides data structures and functions for exporting
// prediction and feedback data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/schema"
)

// FeedbackRow represents one labeled prediction for training export.
// This struct maps to the ml_predictions database table.
type FeedbackRow struct {
	// PredictionID is the unique identifier for the prediction
	PredictionID string `parquet:"prediction_id,snappy"`

	// Repo is the repository the prediction was made for (nullable)
	Repo *string `parquet:"repo,optional,snappy"`

	// PredictedValue is the model output on the [0,1] quality scale
	PredictedValue float64 `parquet:"predicted_value,snappy"`

	// ActualValue is the feedback value on the [0,1] quality scale (nullable)
	ActualValue *float64 `parquet:"actual_value,optional,snappy"`

	// Source is the feedback source tag (nullable)
	Source *string `parquet:"source,optional,snappy"`

	// FeedbackClass marks the row as real or synthetic feedback
	FeedbackClass string `parquet:"feedback_class,snappy"`

	// FeaturesJSON contains the JSON-encoded feature bag (nullable)
	FeaturesJSON *string `parquet:"features_json,optional,snappy"`

	// CreatedAt is when the prediction was recorded (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// TrainingRow represents one assembled training example for dataset export.
type TrainingRow struct {
	// Repo is the repository the example was assembled from
	Repo string `parquet:"repo,snappy"`

	// Label is the target quality on the [0,1] scale
	Label float64 `parquet:"label,snappy"`

	// FeaturesJSON contains the JSON-encoded normalized feature bag
	FeaturesJSON string `parquet:"features_json,snappy"`
}

// WriteFeedbackParquet writes a slice of FeedbackRow structs to a Parquet file.
func WriteFeedbackParquet(data []FeedbackRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FeedbackRow struct tags
	writer := parquet.NewGenericWriter[FeedbackRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteTrainingParquet writes a slice of TrainingRow structs to a Parquet file.
func WriteTrainingParquet(data []TrainingRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the TrainingRow struct tags
	writer := parquet.NewGenericWriter[TrainingRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertPredictionRecords converts schema.PredictionRecord to FeedbackRow for Parquet export.
func ConvertPredictionRecords(records []schema.PredictionRecord) []FeedbackRow {
	result := make([]FeedbackRow, len(records))
	for i, record := range records {
		row := FeedbackRow{
			PredictionID:   record.ID,
			PredictedValue: record.PredictedValue,
			ActualValue:    record.ActualValue,
			FeedbackClass:  string(feedbackClass(record)),
			CreatedAt:      record.CreatedAt,
		}
		if record.Context.Repo != "" {
			repo := record.Context.Repo
			row.Repo = &repo
		}
		if record.Source != "" {
			source := record.Source
			row.Source = &source
		}
		if len(record.Context.Features) > 0 {
			if encoded, err := json.Marshal(record.Context.Features); err == nil {
				featuresJSON := string(encoded)
				row.FeaturesJSON = &featuresJSON
			}
		}
		result[i] = row
	}
	return result
}

// ConvertTrainingExamples converts schema.TrainingExample to TrainingRow for Parquet export.
func ConvertTrainingExamples(examples []schema.TrainingExample) []TrainingRow {
	result := make([]TrainingRow, len(examples))
	for i, example := range examples {
		featuresJSON := "{}"
		if encoded, err := json.Marshal(example.Features); err == nil {
			featuresJSON = string(encoded)
		}
		result[i] = TrainingRow{
			Repo:         example.Repo,
			Label:        example.Quality,
			FeaturesJSON: featuresJSON,
		}
	}
	return result
}

// feedbackClass tags a record using the real/synthetic classification rules.
func feedbackClass(record schema.PredictionRecord) schema.FeedbackClass {
	if core.IsReal(record) {
		return schema.RealFeedback
	}
	return schema.SyntheticFeedback
}
