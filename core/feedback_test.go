package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/beastmode/notable/schema"
	"github.com/stretchr/testify/assert"
)

// TestSynthesizeOutcomeBounds keeps synthetic labels in range and rounded.
func TestSynthesizeOutcomeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for range 500 {
		score := SynthesizeOutcome(0.8, rng)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		assert.InDelta(t, score, math.Round(score*100)/100, 1e-12)
	}
}

// TestSynthesizeOutcomeTracksPrediction expects most labels near the
// prediction, with the occasional injected disagreement.
func TestSynthesizeOutcomeTracksPrediction(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	near, far := 0, 0
	for range 1000 {
		score := SynthesizeOutcome(0.8, rng)
		if math.Abs(score-0.8) <= 0.15 {
			near++
		} else {
			far++
		}
	}
	assert.Greater(t, near, far) // variance dominates
	assert.Greater(t, far, 0)    // disagreements do occur
	assert.Less(t, far, near/2)  // but stay the minority
}

// TestSynthesizeOutcomeDeterministic with a fixed seed.
func TestSynthesizeOutcomeDeterministic(t *testing.T) {
	a := SynthesizeOutcome(0.6, rand.New(rand.NewSource(5)))
	b := SynthesizeOutcome(0.6, rand.New(rand.NewSource(5)))
	assert.Equal(t, a, b)
}

// TestSynthesizeSource only emits known tags and skews with quality.
func TestSynthesizeSource(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	known := map[string]bool{
		"recommendation_click": true,
		"time_spent":           true,
		"inline_button":        true,
		"auto-inferred":        true,
	}
	sawEngagement := false
	for range 200 {
		src := SynthesizeSource(0.9, rng)
		assert.True(t, known[src], "unknown source %q", src)
		if src == "recommendation_click" || src == "time_spent" {
			sawEngagement = true
		}
	}
	assert.True(t, sawEngagement)

	// Low-quality predictions never earn engagement sources.
	for range 200 {
		src := SynthesizeSource(0.1, rng)
		assert.NotEqual(t, "recommendation_click", src)
		assert.NotEqual(t, "time_spent", src)
	}
}

// TestIsReal covers the classification table, including the default-real
// policy. Legacy untagged synthetic rows will pass as real here; that is the
// documented policy, not a guarantee.
func TestIsReal(t *testing.T) {
	actual := 0.7
	tests := []struct {
		name string
		rec  schema.PredictionRecord
		real bool
	}{
		{
			name: "explicit synthetic marker",
			rec: schema.PredictionRecord{
				ActualValue: &actual,
				Context:     schema.PredictionContext{Metadata: map[string]any{"synthetic": true}},
			},
			real: false,
		},
		{
			name: "synthetic marker false is ignored",
			rec: schema.PredictionRecord{
				ActualValue: &actual,
				Source:      "user",
				Context:     schema.PredictionContext{Metadata: map[string]any{"synthetic": false}},
			},
			real: true,
		},
		{
			name: "synthetic source tag",
			rec:  schema.PredictionRecord{ActualValue: &actual, Source: "synthetic-backfill"},
			real: false,
		},
		{
			name: "auto-inferred context source",
			rec: schema.PredictionRecord{
				ActualValue: &actual,
				Context:     schema.PredictionContext{Source: "auto-inferred"},
			},
			real: false,
		},
		{
			name: "test generator family",
			rec:  schema.PredictionRecord{ActualValue: &actual, Source: "test-feedback-generator"},
			real: false,
		},
		{
			name: "known real tag",
			rec:  schema.PredictionRecord{ActualValue: &actual, Source: "inline_button"},
			real: true,
		},
		{
			name: "bot feedback counts as real",
			rec:  schema.PredictionRecord{ActualValue: &actual, Source: "bot-feedback-generator"},
			real: true,
		},
		{
			name: "empty source defaults to real",
			rec:  schema.PredictionRecord{ActualValue: &actual},
			real: true,
		},
		{
			name: "unrecognized source defaults to real",
			rec:  schema.PredictionRecord{ActualValue: &actual, Source: "mystery-import"},
			real: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.real, IsReal(tt.rec))
		})
	}
}

// TestHasKnownRealTag distinguishes recognized tags from the default.
func TestHasKnownRealTag(t *testing.T) {
	actual := 0.5
	assert.True(t, HasKnownRealTag(schema.PredictionRecord{ActualValue: &actual, Source: "time_spent"}))
	assert.False(t, HasKnownRealTag(schema.PredictionRecord{ActualValue: &actual, Source: "mystery"}))
	assert.False(t, HasKnownRealTag(schema.PredictionRecord{}))
}

// TestFilterReal keeps real records only.
func TestFilterReal(t *testing.T) {
	actual := 0.5
	records := []schema.PredictionRecord{
		{ID: "real", ActualValue: &actual, Source: "user"},
		{ID: "synthetic", ActualValue: &actual, Source: "synthetic"},
		{ID: "untagged", ActualValue: &actual},
	}
	kept := FilterReal(records)
	assert.Len(t, kept, 2)
	assert.Equal(t, "real", kept[0].ID)
	assert.Equal(t, "untagged", kept[1].ID)
}
