package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with
// -ldflags "-X github.com/papapumpkin/uptake/cmd.version=v1.2.3".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the uptake version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "uptake %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
