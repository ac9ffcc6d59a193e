package core

import (
	"math"
	"sort"

	"github.com/beastmode/notable/schema"
)

// Split fractions for the fixed train/val/test partition.
const (
	trainFraction = 0.70
	valFraction   = 0.85 // cumulative: val is (0.70, 0.85]
)

// Deduplicate collapses records that share a repository key. Records arrive
// newest-first, so the first occurrence wins unless a later one is richer
// per preferRicher.
func Deduplicate(records []schema.RepositoryRecord) []schema.RepositoryRecord {
	seen := make(map[string]int, len(records))
	out := make([]schema.RepositoryRecord, 0, len(records))
	for _, rec := range records {
		key := rec.Key()
		if key == "" {
			continue
		}
		if idx, ok := seen[key]; ok {
			if preferRicher(out[idx], rec) {
				out[idx] = rec
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, rec)
	}
	return out
}

// preferRicher reports whether a later candidate replaces the record already
// held for the same key. Only a strictly larger feature set wins; ties keep
// the earlier (newer file) record.
func preferRicher(existing, candidate schema.RepositoryRecord) bool {
	return len(candidate.Features) > len(existing.Features)
}

// AssembleExamples turns deduplicated records into labeled training examples.
// Each record is normalized and labeled with the heuristic score, unless a
// recorded feedback value exists for its key. Examples with NaN or negative
// labels are dropped.
func AssembleExamples(records []schema.RepositoryRecord, feedback map[string]float64) []schema.TrainingExample {
	deduped := Deduplicate(records)
	examples := make([]schema.TrainingExample, 0, len(deduped))
	for _, rec := range deduped {
		features := Normalize(rec.Features)
		quality, ok := feedback[rec.Key()]
		if !ok {
			quality = Score(features)
		}
		if math.IsNaN(quality) || quality < 0 {
			continue
		}
		examples = append(examples, schema.TrainingExample{
			Features: features,
			Quality:  quality,
			Repo:     rec.Key(),
		})
	}
	return examples
}

// FeatureNames builds the canonical schema: the sorted union of every
// numeric-coercible feature key seen across the examples. A key only has to
// be numeric in one example to enter the schema; rows where it is missing or
// non-numeric carry 0 in that column.
func FeatureNames(examples []schema.TrainingExample) []string {
	set := make(map[string]struct{})
	for _, ex := range examples {
		for k, v := range ex.Features {
			if _, ok := schema.CoerceNumeric(v); ok {
				set[k] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Matrix projects examples onto the ordered feature names positionally,
// producing the parallel feature matrix and label vector.
func Matrix(examples []schema.TrainingExample, names []string) ([][]float64, []float64) {
	x := make([][]float64, len(examples))
	y := make([]float64, len(examples))
	for i, ex := range examples {
		row := make([]float64, len(names))
		for j, name := range names {
			row[j] = ex.Features.Value(name)
		}
		x[i] = row
		y[i] = ex.Quality
	}
	return x, y
}

// Row projects one feature bag onto the ordered names, for inference.
func Row(features schema.FeatureBag, names []string) []float64 {
	row := make([]float64, len(names))
	for j, name := range names {
		row[j] = features.Value(name)
	}
	return row
}

// Split partitions the example pool into the fixed 70/15/15 train/val/test
// groups, in order. No example lands in more than one split.
func Split(examples []schema.TrainingExample) schema.Dataset {
	n := len(examples)
	trainEnd := int(float64(n) * trainFraction)
	valEnd := int(float64(n) * valFraction)
	return schema.Dataset{
		Train: examples[:trainEnd],
		Val:   examples[trainEnd:valEnd],
		Test:  examples[valEnd:],
	}
}

// Stats summarizes the label distribution of the example pool, including
// high/medium/low bucket counts for reporting.
func Stats(examples []schema.TrainingExample) schema.QualityStats {
	var s schema.QualityStats
	if len(examples) == 0 {
		return s
	}
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	var sum float64
	for _, ex := range examples {
		q := ex.Quality
		sum += q
		s.Min = math.Min(s.Min, q)
		s.Max = math.Max(s.Max, q)
		switch schema.QualityBucket(q) {
		case "high":
			s.High++
		case "medium":
			s.Medium++
		default:
			s.Low++
		}
	}
	s.Mean = sum / float64(len(examples))
	var sq float64
	for _, ex := range examples {
		d := ex.Quality - s.Mean
		sq += d * d
	}
	s.Variance = sq / float64(len(examples))
	s.Std = math.Sqrt(s.Variance)
	return s
}
