package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/uptake/internal/catalog"
	"github.com/papapumpkin/uptake/internal/logging"
	"github.com/papapumpkin/uptake/internal/ui"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the framework catalog",
	Long: `List every framework with its model parameters and today's modeled
adoption. With --toml the catalog is printed as a catalog file instead,
which is a convenient starting point for a custom catalog.`,
	Args: cobra.NoArgs,
	RunE: runFrameworks,
}

func init() {
	frameworksCmd.Flags().Bool("toml", false, "print the catalog as a TOML catalog file")
	rootCmd.AddCommand(frameworksCmd)
}

func runFrameworks(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	a.logger = logging.New("warn", a.cfg.Log.Format, cmd.ErrOrStderr())

	if asTOML, _ := cmd.Flags().GetBool("toml"); asTOML {
		cat, err := catalog.Resolve(a.cfg.Catalog.Path)
		if err != nil {
			return err
		}
		return catalog.Encode(cmd.OutOrStdout(), cat)
	}

	cache, err := a.buildCache(time.Now())
	if err != nil {
		return err
	}
	ui.NewWithWriter(cmd.OutOrStdout()).Frameworks(cache)
	return nil
}
