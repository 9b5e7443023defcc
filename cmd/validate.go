package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/catalog"
	"github.com/papapumpkin/uptake/internal/config"
	"github.com/papapumpkin/uptake/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a framework catalog file",
	Long: `Parse and validate a TOML catalog without serving it. Without an
argument the configured catalog (--catalog or catalog.path) is checked, and
with neither the compiled-in catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	printer := ui.NewWithWriter(cmd.ErrOrStderr())

	path := cfg.Catalog.Path
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		printer.ValidateResult("compiled-in catalog", adoption.DefaultCatalog(), nil)
		return nil
	}

	cat, err := catalog.Load(path)
	printer.ValidateResult(path, cat, err)
	if err != nil {
		return fmt.Errorf("catalog %s is invalid", path)
	}
	return nil
}
