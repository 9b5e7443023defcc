package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/dashboard"
	"github.com/papapumpkin/uptake/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the adoption dashboard",
	Long: `Simulate every framework once, then serve the dashboard page, the JSON
API and websocket reload notifications. With a catalog file configured the
file is watched and valid edits are swapped in live.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "interface to bind")
	serveCmd.Flags().Int("port", 8050, "port to listen on (0 picks a free port)")
	serveCmd.Flags().Bool("open", false, "open the dashboard in a browser")
	serveCmd.Flags().Bool("no-watch", false, "do not hot-reload the catalog file")
	serveCmd.Flags().Bool("mcp", false, "mount the MCP SSE endpoint at /mcp")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.open_browser", serveCmd.Flags().Lookup("open"))
	_ = viper.BindPFlag("mcp.enabled", serveCmd.Flags().Lookup("mcp"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		a.cfg.Catalog.Watch = false
	}

	cache, err := a.buildCache(time.Now())
	if err != nil {
		return err
	}
	live := adoption.NewLive(cache)

	var mcpHandler http.Handler
	if a.cfg.MCP.Enabled {
		mcpHandler = mcpserver.New(live, version, a.logger).Handler()
	}
	srv, err := dashboard.NewServer(dashboard.Config{
		Addr:      a.cfg.Server.Addr(),
		Source:    live,
		Logger:    a.logger,
		Telemetry: a.telemetry,
		MCP:       mcpHandler,
	})
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalContext(a.printer)
	defer cancel()

	stop, err := a.watchCatalog(ctx, live, func(c *adoption.Cache, err error) {
		if err == nil {
			srv.Reloaded(c.Generation())
		}
	})
	if err != nil {
		return fmt.Errorf("watching catalog: %w", err)
	}
	defer stop()

	ln, err := srv.Listen()
	if err != nil {
		return err
	}
	a.printer.Banner(version)
	a.printer.Listening(srv.URL(), mcpHandler != nil)

	if a.cfg.Server.OpenBrowser {
		if err := dashboard.OpenBrowser(srv.URL()); err != nil {
			a.logger.Warn("could not open browser", "url", srv.URL(), "err", err)
		}
	}
	return srv.Serve(ctx, ln)
}
