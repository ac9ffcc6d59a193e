// Package core has the scoring, dataset assembly, training and inference
// logic for the repository quality pipeline.
package core

// clamp bounds a value to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp01 bounds a value to the canonical quality range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
