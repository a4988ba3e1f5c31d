package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ration/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search foods,
estimate caloric needs and ask for foraging recommendations.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve the streamable HTTP transport instead.

Examples:
  # Stdio mode (default)
  ration mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  ration mcp serve --port 8090

Client configuration:
  {
    "mcpServers": {
      "ration": {
        "command": "/path/to/ration",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if app == nil {
		return errors.New("services not configured")
	}

	ports := &mcp.Ports{
		Search:   app.Search,
		Calories: app.Calories,
		Foraging: app.Foraging,
		Settings: app.Settings,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
