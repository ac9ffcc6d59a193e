package core

import (
	"math"
	"math/rand"
	"strings"

	"github.com/beastmode/notable/schema"
)

// Source tags that mark feedback as synthetic or inferred rather than an
// observed outcome.
var syntheticSourceTags = []string{
	"synthetic",
	"auto-inferred",
}

// Source tags known to come from observed user or bot outcomes.
var realSourceTags = []string{
	"user",
	"inline_button",
	"manual_user_input",
	"api",
	"recommendation_click",
	"time_spent",
	"detail_view_duration",
	"bot-feedback-generator",
}

// SynthesizeOutcome fabricates a plausible feedback label for a prediction
// that has no real outcome yet. The label tracks the predicted quality with
// uniform variance in [-0.15, +0.15], clamped to [0,1]; 10% of the time it
// is replaced with a low score to simulate users disagreeing outright.
// Rounded to two decimals like real feedback values.
func SynthesizeOutcome(predictedQuality float64, rng *rand.Rand) float64 {
	variance := (rng.Float64() - 0.5) * 0.3
	score := clamp01(predictedQuality + variance)
	if rng.Float64() < 0.1 {
		score = rng.Float64() * 0.5
	}
	return math.Round(score*100) / 100
}

// SynthesizeSource picks a plausible source tag for a synthetic outcome.
// Higher-quality predictions skew toward engagement sources.
func SynthesizeSource(predictedQuality float64, rng *rand.Rand) string {
	r := rng.Float64()
	if predictedQuality > 0.7 && r < 0.3 {
		return "recommendation_click"
	}
	if predictedQuality > 0.5 && r < 0.4 {
		return "time_spent"
	}
	if r < 0.2 {
		return "inline_button"
	}
	return "auto-inferred"
}

// IsReal classifies a prediction record's feedback as real or synthetic.
// Synthetic wins: an explicit synthetic marker or a synthetic-looking source
// tag makes the record synthetic regardless of other tags. A record with an
// unrecognized or empty source defaults to real. That default is a heuristic
// for legacy rows, not a guarantee; untagged synthetic records written before
// markers existed will be misclassified.
func IsReal(rec schema.PredictionRecord) bool {
	if synthetic, ok := rec.Context.Metadata["synthetic"].(bool); ok && synthetic {
		return false
	}
	for _, src := range []string{rec.Source, rec.Context.Source} {
		if matchesSyntheticTag(src) {
			return false
		}
	}
	return true
}

func matchesSyntheticTag(source string) bool {
	if source == "" {
		return false
	}
	s := strings.ToLower(source)
	for _, tag := range syntheticSourceTags {
		if strings.Contains(s, tag) {
			return true
		}
	}
	// Tags of the test-*-generator family.
	return strings.Contains(s, "test-") && strings.Contains(s, "-generator")
}

// HasKnownRealTag reports whether the record's source matches the known
// real-source tag set. Used for diagnostics around the default-real policy.
func HasKnownRealTag(rec schema.PredictionRecord) bool {
	for _, src := range []string{rec.Source, rec.Context.Source} {
		if src == "" {
			continue
		}
		s := strings.ToLower(src)
		for _, tag := range realSourceTags {
			if strings.Contains(s, tag) {
				return true
			}
		}
	}
	return false
}

// FilterReal keeps only records classified as real feedback.
func FilterReal(records []schema.PredictionRecord) []schema.PredictionRecord {
	out := make([]schema.PredictionRecord, 0, len(records))
	for _, rec := range records {
		if IsReal(rec) {
			out = append(out, rec)
		}
	}
	return out
}
