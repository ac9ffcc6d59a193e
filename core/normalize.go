package core

import "github.com/beastmode/notable/schema"

// Normalize flattens a raw feature bag into its canonical shape. Scanner
// output sometimes nests the true feature values under a metadata wrapper;
// wrapped keys are promoted over top-level keys and the wrapper is removed.
// Pure and idempotent: the result never contains a metadata key, so a second
// pass is a no-op.
func Normalize(raw schema.FeatureBag) schema.FeatureBag {
	out := make(schema.FeatureBag, len(raw))
	for k, v := range raw {
		if k == "metadata" {
			continue
		}
		out[k] = v
	}
	for k, v := range metadataEntries(raw["metadata"]) {
		out[k] = v
	}
	return out
}

// metadataEntries extracts the wrapped key set, tolerating both decoded-JSON
// maps and already-typed feature bags.
func metadataEntries(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case schema.FeatureBag:
		return m
	default:
		return nil
	}
}
