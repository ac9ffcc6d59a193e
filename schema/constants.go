package schema

// Custom string types for type safety.
type (
	// Algorithm identifies a model training algorithm.
	Algorithm string

	// NodeType tags a regression tree node as leaf or split.
	NodeType string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the prediction store.
	DatabaseBackend string

	// FeedbackClass tags a feedback record as real or synthetic.
	FeedbackClass string
)

// All training algorithms supported.
const (
	LinearAlgorithm       Algorithm = "linear" // default
	RandomForestAlgorithm Algorithm = "random-forest"
	XGBoostAlgorithm      Algorithm = "xgboost" // placeholder, trains as random-forest
)

// Tree node types.
const (
	LeafNode  NodeType = "leaf"
	SplitNode NodeType = "split"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Feedback classes.
const (
	RealFeedback      FeedbackClass = "real"
	SyntheticFeedback FeedbackClass = "synthetic"
)

// Quality label bucket thresholds.
const (
	HighQualityThreshold   = 0.7
	MediumQualityThreshold = 0.4
)

// ValidAlgorithms lists all valid training algorithms.
var ValidAlgorithms = map[Algorithm]struct{}{
	LinearAlgorithm:       {},
	RandomForestAlgorithm: {},
	XGBoostAlgorithm:      {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// QualityBucket returns the display bucket for a quality value.
func QualityBucket(quality float64) string {
	switch {
	case quality >= HighQualityThreshold:
		return "high"
	case quality >= MediumQualityThreshold:
		return "medium"
	default:
		return "low"
	}
}
