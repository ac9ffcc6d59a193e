package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/parquet"
	"github.com/beastmode/notable/schema"
)

// JSONFeedbackRecord is one exported feedback record in JSON output.
type JSONFeedbackRecord struct {
	ID             string            `json:"id"`
	Repo           string            `json:"repo,omitempty"`
	PredictedValue float64           `json:"predicted_value"`
	ActualValue    *float64          `json:"actual_value,omitempty"`
	Source         string            `json:"source,omitempty"`
	Class          string            `json:"class"`
	Features       schema.FeatureBag `json:"features,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// WriteFeedbackExport writes labeled prediction records in the configured format.
func WriteFeedbackExport(records []schema.PredictionRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.ParquetOut:
		return writeParquetFeedback(records, cfg)
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForFeedback(w, records)
		}, "Feedback JSON written")
	default:
		// Text output has no table rendition for raw feedback rows; CSV
		// keeps the export usable in a terminal pipe.
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForFeedback(w, records)
		}, "Feedback CSV written")
	}
}

// writeParquetFeedback converts records and writes them to a Parquet file.
// Parquet is a binary format, so an output file is required.
func writeParquetFeedback(records []schema.PredictionRecord, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := parquet.ConvertPredictionRecords(records)
	if err := parquet.WriteFeedbackParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Feedback Parquet written to %s\n", cfg.OutputFile)
	return nil
}

func writeJSONResultsForFeedback(w io.Writer, records []schema.PredictionRecord) error {
	out := make([]JSONFeedbackRecord, len(records))
	for i, rec := range records {
		out[i] = JSONFeedbackRecord{
			ID:             rec.ID,
			Repo:           rec.Context.Repo,
			PredictedValue: rec.PredictedValue,
			ActualValue:    rec.ActualValue,
			Source:         rec.Source,
			Class:          feedbackClassName(rec),
			Features:       rec.Context.Features,
			CreatedAt:      rec.CreatedAt,
		}
	}
	return writeJSON(w, out)
}

func writeCSVResultsForFeedback(w io.Writer, records []schema.PredictionRecord) error {
	header := []string{"id", "repo", "predicted_value", "actual_value", "source", "class", "created_at"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, rec := range records {
			actual := ""
			if rec.ActualValue != nil {
				actual = strconv.FormatFloat(*rec.ActualValue, 'f', 4, 64)
			}
			row := []string{
				rec.ID,
				rec.Context.Repo,
				strconv.FormatFloat(rec.PredictedValue, 'f', 4, 64),
				actual,
				rec.Source,
				feedbackClassName(rec),
				rec.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// feedbackClassName tags a record using the real/synthetic classification rules.
func feedbackClassName(rec schema.PredictionRecord) string {
	if core.IsReal(rec) {
		return string(schema.RealFeedback)
	}
	return string(schema.SyntheticFeedback)
}
