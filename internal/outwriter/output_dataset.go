package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/parquet"
	"github.com/beastmode/notable/schema"
)

// WriteDatasetExport writes assembled training examples in the configured format.
func WriteDatasetExport(examples []schema.TrainingExample, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.ParquetOut:
		return writeParquetDataset(examples, cfg)
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, examples)
		}, "Dataset JSON written")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForDataset(w, examples)
		}, "Dataset CSV written")
	}
}

// writeParquetDataset converts examples and writes them to a Parquet file.
// Parquet is a binary format, so an output file is required.
func writeParquetDataset(examples []schema.TrainingExample, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := parquet.ConvertTrainingExamples(examples)
	if err := parquet.WriteTrainingParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Dataset Parquet written to %s\n", cfg.OutputFile)
	return nil
}

func writeCSVResultsForDataset(w io.Writer, examples []schema.TrainingExample) error {
	header := []string{"repo", "label", "features_json"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, example := range examples {
			encoded, err := json.Marshal(example.Features)
			if err != nil {
				return fmt.Errorf("failed to encode features: %w", err)
			}
			row := []string{
				example.Repo,
				strconv.FormatFloat(example.Quality, 'f', 4, 64),
				string(encoded),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
