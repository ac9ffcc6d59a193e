// Package schema has configs, models and shared constants for all parts of notable.
package schema

import "time"

// FeatureBag is a named-value map describing one repository's measurable
// attributes. Values are kept as decoded JSON (numbers, booleans, strings);
// only numeric-coercible values participate in training.
type FeatureBag map[string]any

// Numeric returns the numeric value of a feature, coercing booleans to 0/1.
// The second return value reports whether the value was numeric-coercible.
func (f FeatureBag) Numeric(name string) (float64, bool) {
	return CoerceNumeric(f[name])
}

// Value returns the numeric value of a feature, defaulting to 0 for missing
// or non-numeric entries.
func (f FeatureBag) Value(name string) float64 {
	v, _ := CoerceNumeric(f[name])
	return v
}

// CoerceNumeric converts a decoded JSON value to float64 where possible.
// Booleans map to 0/1 so quality flags can be used directly as weights.
func CoerceNumeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// RepositoryRecord is one scanned repository: identity plus its feature bag.
// Records for the same repository may appear in multiple scan-result files.
type RepositoryRecord struct {
	Repo         string     `json:"repo"`
	URL          string     `json:"url,omitempty"`
	Features     FeatureBag `json:"features"`
	DiscoveredAt string     `json:"discoveredAt,omitempty"`
	ScanFile     string     `json:"-"` // which scan-result file this came from
}

/// Key returns the deduplication key for the record: repo name, falling back
// to URL when the name is missing.
func (r RepositoryRecord) Key() string {
	if r.Repo != "" {
		return r.Repo
	}
	return r.URL
}

// TrainingExample pairs a normalized feature bag with its quality label.
type TrainingExample struct {
	Features FeatureBag `json:"features"`
	Quality  float64    `json:"quality"`
	Repo     string     `json:"repo"`
}

// Dataset holds the fixed train/val/test partition of the example pool.
// No repository appears in more than one split.
type Dataset struct {
	Train []TrainingExample `json:"train"`
	Val   []TrainingExample `json:"val"`
	Test  []TrainingExample `json:"test"`
}

// Size returns the total number of examples across all splits.
func (d *Dataset) Size() int {
	return len(d.Train) + len(d.Val) + len(d.Test)
}

// QualityStats summarizes the label distribution of a prepared dataset.
type QualityStats struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Variance float64 `json:"variance"`
	High     int     `json:"high"`   // quality >= 0.7
	Medium   int     `json:"medium"` // 0.4 <= quality < 0.7
	Low      int     `json:"low"`    // quality < 0.4
}

/// TreeNode is one node of a regression tree: either a leaf carrying a value
// or a binary split on a feature index. Trees are acyclic by construction.
type TreeNode struct {
	Type       NodeType  `json:"type"`
	Value      float64   `json:"value,omitempty"`
	FeatureIdx int       `json:"featureIdx,omitempty"`
	Threshold  float64   `json:"threshold,omitempty"`
	Left       *TreeNode `json:"left,omitempty"`
	Right      *TreeNode `json:"right,omitempty"`
}

// EvalMetrics holds standard regression metrics for one evaluation pass.
// Degenerate is set when the label set is constant (SStot=0) and R2 falls
// back to the 1/-1 convention instead of dividing by zero.
type EvalMetrics struct {
	MAE        float64 `json:"mae"`
	MSE        float64 `json:"mse"`
	RMSE       float64 `json:"rmse"`
	R2         float64 `json:"r2"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// FeatureScaling holds per-feature min-max bounds captured at training time
// so inference can reproduce the identical rescale.
type FeatureScaling struct {
	Mins []float64 `json:"mins"`
	Maxs []float64 `json:"maxs"`
}

// FeatureImportance pairs a feature name with its split-count share.
type FeatureImportance struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
}

// ArtifactMetrics holds the headline metrics persisted with a model.
/// Val/test R2 are optional: splits can be empty on tiny datasets.
type ArtifactMetrics struct {
	R2     float64  `json:"r2"`
	MAE    float64  `json:"mae"`
	RMSE   float64  `json:"rmse"`
	R2Val  *float64 `json:"r2_val,omitempty"`
	R2Test *float64 `json:"r2_test,omitempty"`
}

// ArtifactMetadata describes the training run that produced an artifact.
type ArtifactMetadata struct {
	TrainedAt    time.Time `json:"trainedAt"`
	DatasetSize  int       `json:"datasetSize"`
	FeatureCount int       `json:"featureCount"`
	TrainSize    int       `json:"trainSize"`
	ValSize      int       `json:"valSize"`
	TestSize     int       `json:"testSize"`
}

// ModelArtifact is the persisted, immutable output of a training run.
// FeatureNames is the authoritative column order for inference; rows must
// always be projected through it, never through a recomputed list.
type ModelArtifact struct {
	Algorithm         Algorithm           `json:"algorithm"`
	FeatureNames      []string            `json:"featureNames"`
	Weights           []float64           `json:"weights,omitempty"`
	Bias              float64             `json:"bias,omitempty"`
	Trees             []*TreeNode         `json:"trees,omitempty"`
	Scaling           *FeatureScaling     `json:"scaling,omitempty"`
	Metrics           ArtifactMetrics     `json:"metrics"`
	QualityStats      *QualityStats       `json:"qualityStats,omitempty"`
	FeatureImportance []FeatureImportance `json:"featureImportance,omitempty"`
	Metadata          ArtifactMetadata    `json:"metadata"`
}

// ModelInfo is one model registry row. The registry, not filename ordering,
// decides which artifact is "latest".
type ModelInfo struct {
	ID           int64     `json:"id"`
	Algorithm    Algorithm `json:"algorithm"`
	TrainedAt    time.Time `json:"trainedAt"`
	DatasetSize  int       `json:"datasetSize"`
	FeatureCount int       `json:"featureCount"`
	R2           float64   `json:"r2"`
	MAE          float64   `json:"mae"`
	RMSE         float64   `json:"rmse"`
	ArtifactPath string    `json:"artifactPath"`
}

// PredictionContext is the JSON blob stored alongside a prediction.
type PredictionContext struct {
	Repo     string         `json:"repo,omitempty"`
	Features FeatureBag     `json:"features,omitempty"`
	Source   string         `json:"source,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PredictionRecord is one row of the ml_predictions store. ActualValue stays
// nil until feedback (real or synthetic) arrives.
type PredictionRecord struct {
	ID             string            `json:"id"`
	PredictedValue float64           `json:"predicted_value"`
	ActualValue    *float64          `json:"actual_value"`
	ServiceName    string            `json:"service_name"`
	PredictionType string            `json:"prediction_type"`
	Source         string            `json:"source,omitempty"`
	Context        PredictionContext `json:"context"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ScoredRepository pairs a repository with its heuristic quality score,
// used for ranked reporting.
type ScoredRepository struct {
	Repo     string     `json:"repo"`
	Quality  float64    `json:"quality"`
	Features FeatureBag `json:"features"`
}

// StoreStatus reports health and row counts for the prediction store.
type StoreStatus struct {
	Backend     DatabaseBackend `json:"backend"`
	Connected   bool            `json:"connected"`
	Predictions int64           `json:"predictions"`
	Labeled     int64           `json:"labeled"`
	Models      int64           `json:"models"`
	Oldest      *time.Time      `json:"oldest,omitempty"`
	Newest      *time.Time      `json:"newest,omitempty"`
}
