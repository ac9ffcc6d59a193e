package cmd

import (
	"context"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/outwriter"
	"github.com/beastmode/notable/internal/scanload"
	"github.com/beastmode/notable/schema"
)

// scoreCmd ranks scanned repositories with the quality heuristic.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank scanned repositories by heuristic quality.",
	Long: `Load scanned repository files and rank every repository by the
engagement-based quality heuristic. No trained model is required.

The data directory is searched for scanned-repos-*.json and
enhanced-features-*.json files. When a repository appears in multiple
scan files, the newest record wins.

Examples:
  # Rank repositories in the current directory
  notable score

  # Rank a specific data directory and show more results
  notable score --data-dir ./scans --limit 50

  # Export rankings to CSV
  notable score --output csv --output-file rankings.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runScore(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run scoring", err)
		}
	},
}

// runScore loads scan data, scores each repository, and writes the ranking.
func runScore(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	records, err := loadScanRecords(ctx, cfg)
	if err != nil {
		return err
	}

	results := make([]schema.ScoredRepository, 0, len(records))
	for _, rec := range records {
		features := core.Normalize(rec.Features)
		results = append(results, schema.ScoredRepository{
			Repo:     rec.Key(),
			Quality:  core.Score(features),
			Features: features,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Quality > results[j].Quality
	})
	if len(results) > cfg.ResultLimit {
		results = results[:cfg.ResultLimit]
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteScores(results, cfg, time.Since(start))
}

// loadScanRecords loads and deduplicates all scan files in the data directory.
func loadScanRecords(ctx context.Context, cfg *contract.Config) ([]schema.RepositoryRecord, error) {
	loader := &scanload.Loader{Workers: cfg.Workers}
	records, err := loader.LoadAll(ctx, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return core.Deduplicate(records), nil
}
