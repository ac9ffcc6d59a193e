package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/schema"
)

// WriteScoreResults outputs ranked repository scores, dispatching based on
// the output format configured.
func WriteScoreResults(results []schema.ScoredRepository, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForScores(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForScores(w, results)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(results, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeScoreTable generates and writes the human-readable table.
func writeScoreTable(results []schema.ScoredRepository, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Repository", "Quality", "Label", "Stars", "Forks"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	maxRepoWidth := getMaxTableRepoWidth(cfg)
	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(r.Repo, maxRepoWidth),
			formatQuality(r.Quality),
			label(r.Quality),
			strconv.FormatInt(int64(r.Features.Value("stars")), 10),
			strconv.FormatInt(int64(r.Features.Value("forks")), 10),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	high, medium, low := 0, 0, 0
	for _, r := range results {
		switch schema.QualityBucket(r.Quality) {
		case "high":
			high++
		case "medium":
			medium++
		default:
			low++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d repositories (high: %d, medium: %d, low: %d)\n", len(results), high, medium, low); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForScores writes the ranked scores in CSV format.
func writeCSVResultsForScores(w io.Writer, results []schema.ScoredRepository) error {
	header := []string{"rank", "repo", "quality", "label", "stars", "forks", "open_issues"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Repo,
				strconv.FormatFloat(r.Quality, 'f', 4, 64),
				contract.GetPlainLabel(r.Quality),
				strconv.FormatFloat(r.Features.Value("stars"), 'f', -1, 64),
				strconv.FormatFloat(r.Features.Value("forks"), 'f', -1, 64),
				strconv.FormatFloat(r.Features.Value("openIssues"), 'f', -1, 64),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForScores writes the ranked scores in JSON format.
func writeJSONResultsForScores(w io.Writer, results []schema.ScoredRepository) error {
	// Prepare the data structure for JSON with rank and label added
	type JSONScoreResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ScoredRepository
	}

	output := make([]JSONScoreResult, len(results))
	for i, r := range results {
		output[i] = JSONScoreResult{
			Rank:             i + 1,
			Label:            contract.GetPlainLabel(r.Quality),
			ScoredRepository: r,
		}
	}
	return writeJSON(w, output)
}
