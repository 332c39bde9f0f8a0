package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailblocks/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can import
and repair email markup and read stored templates.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for desktop assistants)
  mailblocks mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  mailblocks mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "mailblocks": {
        "command": "/path/to/mailblocks",
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

	settings := currentSettings()
	ports := &mcp.Ports{
		Import:    importService,
		Templates: templateService,
	}

	server, err := mcp.NewServer(ports, mcp.Config{
		RateLimit:     settings.MCP.RateLimit,
		MaxInputBytes: settings.Import.MaxInputBytes,
	})
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
