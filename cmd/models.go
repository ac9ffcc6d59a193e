package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/outwriter"
)

// modelsCmd lists the models registered in the model registry.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List registered model artifacts.",
	Long: `List every model registered in the model registry, newest first.

Each row shows the training metrics recorded at registration time and
the artifact path the predict command will load.

Examples:
  # List models in a table
  notable models

  # Export the registry as CSV
  notable models --output csv --output-file models.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runModels(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list models", err)
		}
	},
}

// runModels fetches registry rows and writes them out.
func runModels(ctx context.Context, cfg *contract.Config) error {
	registry := storeManager.GetModelRegistry()
	if registry == nil {
		return fmt.Errorf("the model registry requires a prediction store backend")
	}

	models, err := registry.ListModels(ctx)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteModels(models, cfg)
}
