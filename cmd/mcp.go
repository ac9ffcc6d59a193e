package cmd

import (
	"github.com/spf13/cobra"

	"github.com/beastmode/notable/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Notable MCP server",
	Long:  `Launch an MCP server that allows AI agents to score and predict repository quality via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep setup quiet when running in MCP mode to avoid polluting
		// stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
