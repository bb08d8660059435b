package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxhedge CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fxhedge version %s\n", version)
		fmt.Fprintln(cmd.OutOrStdout(), "FX forward curve and hedging analyzer")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
