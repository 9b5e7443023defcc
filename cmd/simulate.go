package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/export"
	"github.com/papapumpkin/uptake/internal/logging"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Print simulated adoption series",
	Long: `Simulate the catalog and write the series to stdout. Adoption is a
percentage; dates are the Euler step dates. Use --stride to thin the output
and --now to pin the reference date.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringSlice("framework", nil, "framework to include (repeatable; default all)")
	simulateCmd.Flags().StringP("format", "f", "table", "output format: table, csv, json, yaml")
	simulateCmd.Flags().Int("stride", 10, "keep every Nth sample")
	simulateCmd.Flags().String("now", "", "reference date YYYY-MM-DD (default today)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	stride, _ := cmd.Flags().GetInt("stride")
	if stride < 1 {
		return fmt.Errorf("--stride must be >= 1, got %d", stride)
	}
	now := time.Now()
	if s, _ := cmd.Flags().GetString("now"); s != "" {
		if now, err = adoption.ParseDate(s); err != nil {
			return fmt.Errorf("--now: %w", err)
		}
	}
	names, _ := cmd.Flags().GetStringSlice("framework")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	// Keep stdout clean for the export; only warnings reach stderr.
	a.logger = logging.New("warn", a.cfg.Log.Format, cmd.ErrOrStderr())

	cache, err := a.buildCache(now)
	if err != nil {
		return err
	}
	return writeSimulation(cmd.OutOrStdout(), cache, names, f, stride)
}

// writeSimulation exports the named series, or all of them when names is
// empty, in catalog order.
func writeSimulation(w io.Writer, cache *adoption.Cache, names []string, f export.Format, stride int) error {
	entries := cache.Entries()
	if len(names) > 0 {
		selected := make([]adoption.Entry, 0, len(names))
		for _, name := range names {
			fw, ok := cache.Catalog().Lookup(name)
			if !ok {
				return fmt.Errorf("%w: %q", adoption.ErrUnknownFramework, name)
			}
			s, err := cache.Series(name)
			if err != nil {
				return err
			}
			selected = append(selected, adoption.Entry{Framework: fw, Series: s})
		}
		entries = selected
	}
	return export.Write(w, f, export.Rows(entries, stride))
}
