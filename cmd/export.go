package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/outwriter"
)

// exportCmd exports labeled feedback for offline training.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export labeled feedback from the prediction store.",
	Long: `Export labeled predictions from the prediction store as a training
dataset. Parquet output produces columnar files suitable for offline
training pipelines; CSV and JSON are available for inspection.

Examples:
  # Export the latest labeled feedback as CSV
  notable export --output csv --output-file feedback.csv

  # Export a Parquet dataset of real feedback only
  notable export --output parquet --output-file feedback.parquet --real-only

  # Export the assembled training dataset instead of raw feedback
  notable export --dataset --output parquet --output-file dataset.parquet

  # Export more rows
  notable export --feedback-limit 500 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run export", err)
		}
	},
}

// runExport pulls labeled records from the store and writes them out.
func runExport(ctx context.Context, cfg *contract.Config) error {
	if cfg.DatasetExport {
		return runDatasetExport(ctx, cfg)
	}

	store := storeManager.GetPredictionStore()
	if store == nil {
		return fmt.Errorf("export requires a prediction store backend")
	}

	records, err := store.ListLabeled(ctx, cfg.FeedbackLimit)
	if err != nil {
		return err
	}
	if cfg.RealOnly {
		records = core.FilterReal(records)
	}
	if len(records) == 0 {
		fmt.Println("No labeled feedback to export. Run 'notable feedback' first.")
		return nil
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteFeedback(records, cfg)
}

// runDatasetExport assembles training examples the same way train does and
// writes them out instead of training on them.
func runDatasetExport(ctx context.Context, cfg *contract.Config) error {
	records, err := loadScanRecords(ctx, cfg)
	if err != nil {
		return err
	}
	feedback, err := loadFeedbackLabels(ctx, cfg)
	if err != nil {
		return err
	}

	examples := core.AssembleExamples(records, feedback)
	if len(examples) == 0 {
		return fmt.Errorf("no training examples found in scan data under %s", cfg.DataDir)
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteDataset(examples, cfg)
}
