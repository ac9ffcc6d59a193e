package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/schema"
)

// modelTimeFormat is the display format for registry timestamps.
const modelTimeFormat = "2006-01-02 15:04:05"

// WriteModelList outputs model registry rows, dispatching based on the
// output format configured.
func WriteModelList(models []schema.ModelInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, models)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForModels(w, models)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelTable(models, cfg, w)
		}, "Wrote table")
	}
}

// writeModelTable generates and writes the human-readable table.
func writeModelTable(models []schema.ModelInfo, cfg *contract.Config, writer io.Writer) error {
	if len(models) == 0 {
		_, err := fmt.Fprintln(writer, "No models registered. Run the train command first.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"ID", "Algorithm", "Trained At", "Examples", "Features", "R2", "MAE", "RMSE", "Artifact"})

	maxPathWidth := getMaxTableRepoWidth(cfg)
	var data [][]string
	for _, m := range models {
		data = append(data, []string{
			strconv.FormatInt(m.ID, 10),
			string(m.Algorithm),
			m.TrainedAt.Format(modelTimeFormat),
			strconv.Itoa(m.DatasetSize),
			strconv.Itoa(m.FeatureCount),
			fmt.Sprintf("%.4f", m.R2),
			fmt.Sprintf("%.4f", m.MAE),
			fmt.Sprintf("%.4f", m.RMSE),
			contract.TruncatePath(m.ArtifactPath, maxPathWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForModels writes registry rows in CSV format.
func writeCSVResultsForModels(w io.Writer, models []schema.ModelInfo) error {
	header := []string{"id", "algorithm", "trained_at", "dataset_size", "feature_count", "r2", "mae", "rmse", "artifact_path"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, m := range models {
			rec := []string{
				strconv.FormatInt(m.ID, 10),
				string(m.Algorithm),
				m.TrainedAt.Format(modelTimeFormat),
				strconv.Itoa(m.DatasetSize),
				strconv.Itoa(m.FeatureCount),
				strconv.FormatFloat(m.R2, 'f', 4, 64),
				strconv.FormatFloat(m.MAE, 'f', 4, 64),
				strconv.FormatFloat(m.RMSE, 'f', 4, 64),
				m.ArtifactPath,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
