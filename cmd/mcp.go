package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gamemate-ai/gamemate/internal/app"
	mcpserver "github.com/gamemate-ai/gamemate/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing catalog search and recommendation tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := app.Initialize(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "gamemate MCP server started on stdio (documents=%d)\n", a.Store.Count())

		srv := mcpserver.NewServer(a.Store, a.Orchestrator)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
