package core

import (
	"math"
	"sort"
	"testing"

	"github.com/beastmode/notable/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeduplicate checks the richer-feature-set merge policy.
func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name     string
		records  []schema.RepositoryRecord
		expected []string // winning ScanFile per surviving record, in order
	}{
		{
			name: "first occurrence wins on equal richness",
			records: []schema.RepositoryRecord{
				{Repo: "a/b", Features: schema.FeatureBag{"stars": 1.0}, ScanFile: "new"},
				{Repo: "a/b", Features: schema.FeatureBag{"stars": 2.0}, ScanFile: "old"},
			},
			expected: []string{"new"},
		},
		{
			name: "richer later record wins",
			records: []schema.RepositoryRecord{
				{Repo: "a/b", Features: schema.FeatureBag{"stars": 1.0}, ScanFile: "new"},
				{Repo: "a/b", Features: schema.FeatureBag{"stars": 2.0, "forks": 3.0}, ScanFile: "old"},
			},
			expected: []string{"old"},
		},
		{
			name: "url fallback key",
			records: []schema.RepositoryRecord{
				{URL: "https://x/a", Features: schema.FeatureBag{"stars": 1.0}, ScanFile: "one"},
				{URL: "https://x/a", Features: schema.FeatureBag{"stars": 2.0}, ScanFile: "two"},
				{URL: "https://x/b", Features: schema.FeatureBag{}, ScanFile: "three"},
			},
			expected: []string{"one", "three"},
		},
		{
			name: "keyless records dropped",
			records: []schema.RepositoryRecord{
				{Features: schema.FeatureBag{"stars": 9.0}, ScanFile: "orphan"},
				{Repo: "a/b", Features: schema.FeatureBag{}, ScanFile: "kept"},
			},
			expected: []string{"kept"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.records)
			require.Len(t, got, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want, got[i].ScanFile)
			}
		})
	}
}

// TestAssembleExamples checks labeling, feedback adoption and filtering.
func TestAssembleExamples(t *testing.T) {
	records := []schema.RepositoryRecord{
		{Repo: "a/b", Features: schema.FeatureBag{"stars": 5000.0, "forks": 300.0}},
		{Repo: "c/d", Features: schema.FeatureBag{"metadata": map[string]any{"stars": 200.0, "forks": 30.0}}},
	}
	feedback := map[string]float64{"c/d": 0.9}

	examples := AssembleExamples(records, feedback)
	require.Len(t, examples, 2)

	assert.Equal(t, "a/b", examples[0].Repo)
	assert.InDelta(t, Score(records[0].Features), examples[0].Quality, 0.0001)

	// Feedback overrides the heuristic, and normalization ran first.
	assert.Equal(t, 0.9, examples[1].Quality)
	assert.Equal(t, 200.0, examples[1].Features.Value("stars"))
	assert.NotContains(t, examples[1].Features, "metadata")
}

// TestAssembleExamplesFiltersBadLabels drops NaN and negative labels.
func TestAssembleExamplesFiltersBadLabels(t *testing.T) {
	records := []schema.RepositoryRecord{
		{Repo: "ok", Features: schema.FeatureBag{"stars": 1000.0, "forks": 50.0}},
		{Repo: "nan", Features: schema.FeatureBag{}},
		{Repo: "neg", Features: schema.FeatureBag{}},
	}
	feedback := map[string]float64{"nan": math.NaN(), "neg": -0.3}

	examples := AssembleExamples(records, feedback)
	require.Len(t, examples, 1)
	assert.Equal(t, "ok", examples[0].Repo)
}

// TestFeatureNames checks the sorted numeric union.
func TestFeatureNames(t *testing.T) {
	examples := []schema.TrainingExample{
		{Features: schema.FeatureBag{"stars": 1.0, "name": "notNumeric"}},
		{Features: schema.FeatureBag{"forks": 2.0, "hasTests": true}},
		{Features: schema.FeatureBag{"stars": "stringHere"}},
	}
	names := FeatureNames(examples)
	assert.Equal(t, []string{"forks", "hasTests", "stars"}, names)
	assert.True(t, sort.StringsAreSorted(names))
}

// TestMatrix checks positional projection and zero defaults.
func TestMatrix(t *testing.T) {
	examples := []schema.TrainingExample{
		{Features: schema.FeatureBag{"a": 1.0, "b": 2.0}, Quality: 0.5},
		{Features: schema.FeatureBag{"b": "oops"}, Quality: 0.25},
	}
	names := []string{"a", "b"}

	x, y := Matrix(examples, names)
	require.Len(t, x, 2)
	assert.Equal(t, []float64{1.0, 2.0}, x[0])
	assert.Equal(t, []float64{0.0, 0.0}, x[1]) // missing and non-numeric both zero
	assert.Equal(t, []float64{0.5, 0.25}, y)
}

// TestSplit checks the fixed partition and cross-membership invariant.
func TestSplit(t *testing.T) {
	examples := make([]schema.TrainingExample, 20)
	for i := range examples {
		examples[i] = schema.TrainingExample{Repo: string(rune('a' + i))}
	}
	ds := Split(examples)
	assert.Len(t, ds.Train, 14)
	assert.Len(t, ds.Val, 3)
	assert.Len(t, ds.Test, 3)
	assert.Equal(t, 20, ds.Size())

	seen := make(map[string]int)
	for _, split := range [][]schema.TrainingExample{ds.Train, ds.Val, ds.Test} {
		for _, ex := range split {
			seen[ex.Repo]++
		}
	}
	for repo, count := range seen {
		assert.Equal(t, 1, count, "repo %s in multiple splits", repo)
	}
}

// TestStats checks distribution summary and bucket counts.
func TestStats(t *testing.T) {
	examples := []schema.TrainingExample{
		{Quality: 0.9}, {Quality: 0.7}, {Quality: 0.5}, {Quality: 0.1},
	}
	s := Stats(examples)
	assert.InDelta(t, 0.1, s.Min, 0.0001)
	assert.InDelta(t, 0.9, s.Max, 0.0001)
	assert.InDelta(t, 0.55, s.Mean, 0.0001)
	assert.Equal(t, 2, s.High)
	assert.Equal(t, 1, s.Medium)
	assert.Equal(t, 1, s.Low)
	assert.Greater(t, s.Std, 0.0)

	assert.Zero(t, Stats(nil))
}
