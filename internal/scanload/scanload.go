// Package scanload reads scan-result files produced by the external
// repository scanner into records for dataset assembly.
package scanload

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/beastmode/notable/internal/log"
	"github.com/beastmode/notable/schema"
)

// Filename patterns the scanner writes, matched inside the data directory.
var scanFilePatterns = []string{
	"scanned-repos-*.json",
	"enhanced-features-*.json",
}

// DefaultWorkers is the bounded pool size for concurrent file reads.
const DefaultWorkers = 3

// scanFile mirrors the two wire shapes scan-result files come in.
type scanFile struct {
	TrainingData []schema.RepositoryRecord `json:"trainingData"`
	Repositories []schema.RepositoryRecord `json:"repositories"`
}

// Loader reads scan-result files with a bounded worker pool. BatchDelay, when
// set, paces dispatch between files to stay friendly to slow storage.
type Loader struct {
	Workers    int
	BatchDelay time.Duration
}

// FindScanFiles returns all scan-result files in the data directory, newest
// first. Filenames carry timestamps, so lexicographic descending order is
// newest first. Missing files are a setup error and fail fast.
func FindScanFiles(dataDir string) ([]string, error) {
	var files []string
	for _, pattern := range scanFilePatterns {
		matches, err := filepath.Glob(filepath.Join(dataDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad scan file pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no scanned repository files found in %s", dataDir)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// Load reads and decodes the given files concurrently, preserving the input
// file order in the returned records so that newest-first deduplication
// stays correct downstream.
func (l *Loader) Load(ctx context.Context, paths []string) ([]schema.RepositoryRecord, error) {
	workers := l.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	type job struct {
		idx  int
		path string
	}
	type result struct {
		idx     int
		records []schema.RepositoryRecord
		err     error
	}

	jobCh := make(chan job, len(paths))
	resultCh := make(chan result, len(paths))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for j := range jobCh {
				if ctx.Err() != nil {
					resultCh <- result{idx: j.idx, err: ctx.Err()}
					continue
				}
				records, err := readScanFile(j.path)
				resultCh <- result{idx: j.idx, records: records, err: err}
			}
		})
	}

	for i, p := range paths {
		jobCh <- job{idx: i, path: p}
		if l.BatchDelay > 0 && (i+1)%workers == 0 {
			time.Sleep(l.BatchDelay)
		}
	}
	close(jobCh)
	wg.Wait()
	close(resultCh)

	perFile := make([][]schema.RepositoryRecord, len(paths))
	for r := range resultCh {
		if r.err != nil {
			return nil, fmt.Errorf("load scan file %s: %w", paths[r.idx], r.err)
		}
		perFile[r.idx] = r.records
	}

	var all []schema.RepositoryRecord
	for _, records := range perFile {
		all = append(all, records...)
	}
	log.Debugf("loaded %d records from %d scan files", len(all), len(paths))
	return all, nil
}

// LoadAll finds and loads every scan-result file in the data directory.
func (l *Loader) LoadAll(ctx context.Context, dataDir string) ([]schema.RepositoryRecord, error) {
	files, err := FindScanFiles(dataDir)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, files)
}

// readScanFile decodes one scan-result file, accepting both the
// trainingData and repositories wire shapes.
func readScanFile(path string) ([]schema.RepositoryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf scanFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("malformed scan file: %w", err)
	}
	records := sf.TrainingData
	if len(records) == 0 {
		records = sf.Repositories
	}
	name := filepath.Base(path)
	for i := range records {
		records[i].ScanFile = name
	}
	return records, nil
}
