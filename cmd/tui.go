package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/logging"
	"github.com/papapumpkin/uptake/internal/tui"
)

// tuiCmd shows the dashboard in the terminal.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse adoption curves in the terminal",
	Long: `Launch the terminal dashboard: pick a framework from the list to see
its stat cards and a sparkline of its curve next to today's adoption of
every framework. Catalog edits are picked up live, as with serve.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isStderrTTY() {
		return fmt.Errorf("uptake tui requires a TTY (terminal)")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	// The alternate screen owns the terminal; reload failures surface in the
	// footer instead.
	a.logger = logging.Discard()

	cache, err := a.buildCache(time.Now())
	if err != nil {
		return err
	}
	live := adoption.NewLive(cache)

	ctx, cancel := setupSignalContext(a.printer)
	defer cancel()

	p := tui.NewProgram(ctx, live)
	stop, err := a.watchCatalog(ctx, live, func(c *adoption.Cache, err error) {
		tui.NotifyReload(p, c, err)
	})
	if err != nil {
		return fmt.Errorf("watching catalog: %w", err)
	}
	defer stop()

	return tui.Run(p)
}
