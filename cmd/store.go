package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/mlstore"
	"github.com/beastmode/notable/internal/outwriter"
	"github.com/beastmode/notable/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize persistence with the loaded config
	if err := mlstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on prediction store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by pipeline commands. This avoids scan data
// validation and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the prediction store",
	Long: `Manage the store that holds predictions, feedback, and the model registry.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored predictions and models
  migrate - Run schema migrations against the store

Examples:
  # Check store status
  notable store status

  # Clear the store before a fresh pipeline run
  notable store clear`,
}

// storeClearCmd clears the prediction store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored predictions and models",
	Long: `Delete all predictions, feedback, and registered models from the
configured backend.

Use this when:
- Starting a fresh experiment without old feedback
- The store may hold stale or corrupted rows
- Testing pipeline behavior from an empty state

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the prediction and model tables

Examples:
  # Clear SQLite store (default)
  notable store clear

  # Clear MySQL store (set connection string via env variable)
  NOTABLE_STORE_BACKEND=mysql NOTABLE_STORE_DB_CONNECT="..." notable store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := mlstore.ClearStore(cfg.StoreBackend, mlstore.GetDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeStatusCmd shows prediction store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the prediction store.

Displays:
- Backend type and connection status
- Total, labeled, and unlabeled prediction counts
- Registered model count
- Oldest and newest prediction timestamps

Examples:
  # Check store status
  notable store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := mlstore.Manager.GetPredictionStore()
		if store == nil {
			contract.LogFatal("Failed to get store status", fmt.Errorf("store backend is disabled"))
		}
		status, err := store.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write store status", err)
		}
	},
}

// storeMigrateCmd runs schema migrations against the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations against the prediction store",
	Long: `Apply or roll back the prediction store schema migrations.

By default the store migrates to the latest version. Pass an explicit
--target-version to move to a specific version, or 0 to roll every
migration back.

Examples:
  # Migrate to the latest schema version
  notable store migrate

  # Roll back all migrations
  notable store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := mlstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
	},
}
