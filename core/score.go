package core

import (
	"math"

	"github.com/beastmode/notable/schema"
)

// Score calculates a repository's heuristic quality label in [0,1] from its
// normalized feature bag. The label combines log-scaled engagement,
// maintenance-signal flags and activity sub-scores, then applies stacking
// star bonuses and low-engagement penalties before clamping.
// Deterministic: identical input yields a bit-for-bit identical label.
func Score(f schema.FeatureBag) float64 {
	// Sub-score weights. Engagement dominates; boolean quality flags and
	// activity signals fill out the rest.
	const (
		wStars   = 0.4
		wForks   = 0.3
		wIssues  = 0.1
		wTests   = 0.15
		wCI      = 0.12
		wReadme  = 0.05
		wLicense = 0.05
		wDocker  = 0.03
		wCodeQ   = 0.1
		wRatio   = 0.1
		wActive  = 0.1
		wAge     = 0.05
		wHealth  = 0.05
	)

	stars := f.Value("stars")
	forks := f.Value("forks")
	openIssues := f.Value("openIssues")

	// Log scale saturates around 1M stars / 100K forks. log10(0+1) is 0,
	// so empty repositories never trip the math.
	starsScore := math.Min(1, math.Log10(stars+1)/6)
	forksScore := math.Min(1, math.Log10(forks+1)/5)
	engagement := wStars*starsScore + wForks*forksScore + wIssues*math.Min(1, openIssues/1000)

	indicators := f.Value("hasTests")*wTests +
		f.Value("hasCI")*wCI +
		f.Value("hasReadme")*wReadme +
		f.Value("hasLicense")*wLicense +
		f.Value("hasDocker")*wDocker

	codeQuality := f.Value("codeQualityScore")*wCodeQ +
		math.Min(1, f.Value("codeFileRatio")*2)*wRatio

	activity := f.Value("isActive")*wActive +
		math.Min(1, f.Value("repoAgeDays")/3650)*wAge

	quality := engagement + indicators + codeQuality + activity +
		f.Value("communityHealth")*wHealth

	// Star-count bonuses stack across tiers.
	if stars > 10000 {
		quality += 0.1
	}
	if stars > 50000 {
		quality += 0.1
	}
	if stars > 100000 {
		quality += 0.15
	}

	// Low-engagement penalties also stack.
	if stars < 100 && forks < 20 {
		quality -= 0.2
	}
	if stars < 50 {
		quality -= 0.3
	}

	// Open-issue load relative to stars.
	if stars > 0 && openIssues > 0 {
		ratio := openIssues / stars
		if ratio > 0.5 {
			quality -= 0.15
		}
		if ratio > 1.0 {
			quality -= 0.25
		}
	}

	return clamp01(quality)
}
