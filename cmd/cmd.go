// Package cmd defines the command-line interface for notable.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("data-dir", "d", ".", "Directory containing scanned repository files")
	rootCmd.PersistentFlags().String("models-dir", "", "Directory for model artifacts (defaults to ~/.notable/models)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultScanWorkers, "Number of concurrent workers for file loading")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Prediction store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of trainCmd to Viper
	trainCmd.Flags().StringP("algorithm", "a", string(schema.LinearAlgorithm), "Training algorithm: linear or random-forest or xgboost")
	trainCmd.Flags().Float64("learning-rate", core.DefaultLearningRate, "Learning rate for gradient descent")
	trainCmd.Flags().Int("epochs", core.DefaultEpochs, "Number of training epochs")
	trainCmd.Flags().Int("batch-size", core.DefaultBatchSize, "Batch size for gradient descent")
	trainCmd.Flags().Int("trees", core.DefaultTreeCount, "Number of trees for random forest")
	trainCmd.Flags().Int("max-depth", core.DefaultMaxDepth, "Maximum tree depth")
	trainCmd.Flags().Int("min-samples", core.DefaultMinSamples, "Minimum samples per tree node")
	trainCmd.Flags().Bool("scale", false, "Apply min-max feature scaling before linear training")
	trainCmd.Flags().Int64("seed", 1, "Random seed for bootstrap sampling")
	if err := viper.BindPFlags(trainCmd.Flags()); err != nil {
		contract.LogFatal("Error binding train flags", err)
	}

	// Bind all flags of predictCmd to Viper
	predictCmd.Flags().StringP("model", "m", "", "Path to a model artifact (defaults to the latest registered model)")
	predictCmd.Flags().String("repo", "", "Repository name to look up in the scan data")
	predictCmd.Flags().String("features", "", "JSON object of repository features (overrides --repo lookup)")
	if err := viper.BindPFlags(predictCmd.Flags()); err != nil {
		contract.LogFatal("Error binding predict flags", err)
	}

	// Bind all flags of feedbackCmd to Viper
	feedbackCmd.Flags().Int("feedback-target", contract.DefaultFeedbackTarget, "Number of synthetic feedback records to generate")
	feedbackCmd.Flags().Int64("feedback-seed", 0, "Random seed for synthetic feedback (0 = time-based)")
	if err := viper.BindPFlags(feedbackCmd.Flags()); err != nil {
		contract.LogFatal("Error binding feedback flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().Int("feedback-limit", contract.DefaultFeedbackLimit, "Maximum number of labeled predictions to export")
	exportCmd.Flags().Bool("real-only", false, "Export only real (non-synthetic) feedback")
	exportCmd.Flags().Bool("dataset", false, "Export assembled training examples instead of raw feedback")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
