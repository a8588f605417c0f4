package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/namedrop/internal/adapters/driving/mcp"
	"github.com/custodia-labs/namedrop/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server.

By default the server communicates over stdio using JSON-RPC. Use --port to
serve over HTTP instead.

Tools:
  annotate     suggest named entities in a text selection
  list_spans   list accepted spans of a document
  remove_span  remove an accepted span

Changes to the configuration file are picked up while the server runs.

Examples:
  namedrop mcp serve
  namedrop mcp serve --port 8080`,
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

	ports := &mcp.Ports{
		Annotation: annotationService,
		Span:       spanService,
		Settings:   settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	if err := watchConfig(ctx); err != nil {
		logger.Warn("configuration changes will not be picked up: %v", err)
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// watchConfig logs configuration reloads until ctx is cancelled.
func watchConfig(ctx context.Context) error {
	if configWatcher == nil {
		return nil
	}

	changes, err := configWatcher.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for range changes {
			logger.Info("configuration reloaded")
		}
	}()
	return nil
}
