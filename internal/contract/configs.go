package contract

import (
	"fmt"
	"strings"

	"github.com/beastmode/notable/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit    = 25
	MaxResultLimit        = 1000
	DefaultScanWorkers    = 3
	DefaultFeedbackLimit  = 100
	DefaultFeedbackTarget = 50
)

// Service identity written to every prediction row.
const (
	ServiceName    = "notable"
	PredictionType = "quality"
)

// Config holds the runtime configuration for a pipeline run.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir     string
	ModelsDir   string
	ModelPath   string // explicit artifact path, overrides the registry lookup
	ResultLimit int
	Workers     int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	Verbose     bool

	Algorithm    schema.Algorithm
	LearningRate float64
	Epochs       int
	BatchSize    int
	Trees        int
	MaxDepth     int
	MinSamples   int
	Scale        bool
	Seed         int64

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	FeedbackLimit  int
	FeedbackTarget int
	FeedbackSeed   int64 // 0 means seed from the current time
	RealOnly       bool
	DatasetExport  bool // export assembled training examples instead of raw feedback

	Repo         string // repository to predict, looked up in the scan data
	FeaturesJSON string // inline feature JSON, overrides the Repo lookup
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	DataDir        string `mapstructure:"data-dir"`
	ModelsDir      string `mapstructure:"models-dir"`
	Limit          int    `mapstructure:"limit"`
	Workers        int    `mapstructure:"workers"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	Verbose        bool   `mapstructure:"verbose"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from trainCmd.Flags() ---
	Algorithm    string  `mapstructure:"algorithm"`
	LearningRate float64 `mapstructure:"learning-rate"`
	Epochs       int     `mapstructure:"epochs"`
	BatchSize    int     `mapstructure:"batch-size"`
	Trees        int     `mapstructure:"trees"`
	MaxDepth     int     `mapstructure:"max-depth"`
	MinSamples   int     `mapstructure:"min-samples"`
	Scale        bool    `mapstructure:"scale"`
	Seed         int64   `mapstructure:"seed"`

	// --- Fields from predictCmd.Flags() ---
	ModelPath    string `mapstructure:"model"`
	Repo         string `mapstructure:"repo"`
	FeaturesJSON string `mapstructure:"features"`

	// --- Fields from feedbackCmd / exportCmd flags ---
	FeedbackLimit  int   `mapstructure:"feedback-limit"`
	FeedbackTarget int   `mapstructure:"feedback-target"`
	FeedbackSeed   int64 `mapstructure:"feedback-seed"`
	RealOnly       bool  `mapstructure:"real-only"`
	DatasetExport  bool  `mapstructure:"dataset"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateTrainingInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates the presentation and IO fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	cfg.ModelsDir = input.ModelsDir
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = GetDefaultModelsDir()
	}
	cfg.ModelPath = input.ModelPath
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	return nil
}

// validateTrainingInputs processes the algorithm choice and hyperparameters.
func validateTrainingInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Algorithm = schema.Algorithm(strings.ToLower(input.Algorithm))
	if cfg.Algorithm == "" {
		cfg.Algorithm = schema.LinearAlgorithm
	}
	if _, ok := schema.ValidAlgorithms[cfg.Algorithm]; !ok {
		return fmt.Errorf("invalid algorithm '%s'. must be linear, random-forest, xgboost", input.Algorithm)
	}

	if input.LearningRate < 0 {
		return fmt.Errorf("learning-rate cannot be negative (received %g)", input.LearningRate)
	}
	if input.Epochs < 0 {
		return fmt.Errorf("epochs cannot be negative (received %d)", input.Epochs)
	}
	if input.BatchSize < 0 {
		return fmt.Errorf("batch-size cannot be negative (received %d)", input.BatchSize)
	}
	if input.Trees < 0 {
		return fmt.Errorf("trees cannot be negative (received %d)", input.Trees)
	}
	cfg.LearningRate = input.LearningRate
	cfg.Epochs = input.Epochs
	cfg.BatchSize = input.BatchSize
	cfg.Trees = input.Trees
	cfg.MaxDepth = input.MaxDepth
	cfg.MinSamples = input.MinSamples
	cfg.Scale = input.Scale
	cfg.Seed = input.Seed

	return nil
}

// validateStoreInputs processes the prediction store configuration.
func validateStoreInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	if input.FeedbackLimit < 0 {
		return fmt.Errorf("feedback-limit cannot be negative (received %d)", input.FeedbackLimit)
	}
	cfg.FeedbackLimit = input.FeedbackLimit
	if cfg.FeedbackLimit == 0 {
		cfg.FeedbackLimit = DefaultFeedbackLimit
	}

	if input.FeedbackTarget < 0 {
		return fmt.Errorf("feedback-target cannot be negative (received %d)", input.FeedbackTarget)
	}
	cfg.FeedbackTarget = input.FeedbackTarget
	if cfg.FeedbackTarget == 0 {
		cfg.FeedbackTarget = DefaultFeedbackTarget
	}

	cfg.FeedbackSeed = input.FeedbackSeed
	cfg.RealOnly = input.RealOnly
	cfg.DatasetExport = input.DatasetExport
	cfg.Repo = input.Repo
	cfg.FeaturesJSON = input.FeaturesJSON
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
