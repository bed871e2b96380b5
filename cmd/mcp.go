package cmd

import (
	"github.com/huangsam/workwell/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Workwell MCP server",
	Long: `Launch an MCP server over stdio so AI agents can score ratings, classify
comments, submit records and read heatmaps through standard tools.

The --company and --days flags become the defaults for tools that omit them.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Nothing may print to stdout here since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, svc)
	},
}
