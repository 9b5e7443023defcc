package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the adoption tools over MCP on stdio",
	Long: `Run an MCP server on stdin/stdout exposing list_frameworks, get_series
and adoption_on. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	cache, err := a.buildCache(time.Now())
	if err != nil {
		return err
	}
	live := adoption.NewLive(cache)

	ctx, cancel := setupSignalContext(a.printer)
	defer cancel()

	stop, err := a.watchCatalog(ctx, live, nil)
	if err != nil {
		return fmt.Errorf("watching catalog: %w", err)
	}
	defer stop()

	return mcpserver.New(live, version, a.logger).Run(ctx)
}
