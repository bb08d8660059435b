package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/forward"
	"github.com/rustyeddy/fxhedge/ratesource"
)

var curvesCmd = &cobra.Command{
	Use:   "curves",
	Short: "Print forward curves for every pair of the rate source",
	Long: `Fetch a snapshot for each pair the rate source quotes and print its
forward curve from Spot to 1Y.

Example:
  fxhedge curves --source oanda`,
	RunE: runCurves,
}

func init() {
	rootCmd.AddCommand(curvesCmd)
}

func runCurves(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, closeSrc, err := newSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	snaps, err := ratesource.Snapshots(cmd.Context(), src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	banner(out, fmt.Sprintf("FORWARD CURVES (%s)", src.Name()))
	fmt.Fprintf(out, "\n  %-8s %12s\n", "Pair", "Spot")
	for _, s := range snaps {
		fmt.Fprintf(out, "  %-8s %12.4f\n", s.Pair, s.Spot)
	}

	for _, s := range snaps {
		c, err := forward.BuildCurve(s)
		if err != nil {
			return err
		}
		printCurve(out, c)
	}
	return nil
}
