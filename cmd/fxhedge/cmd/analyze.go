package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/analysis"
	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/export"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
	"github.com/rustyeddy/fxhedge/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full hedging analysis for one exposure",
	Long: `Fetch market data, build the forward curve, price the hedge, run the
spot scenarios, compare hedge ratios and print a recommendation. Results are
exported as CSV unless --no-export is given.

Flags override the config file. Without flags the default example runs: a
USD 5,000,000 exposure against CAD hedged 75% for 6 months.

Examples:
  fxhedge analyze
  fxhedge analyze --pair EUR/USD --notional 2000000 --tenor 3M --ratio 0.5 --view bullish
  fxhedge analyze --future-spot 1.40 --reference forward --report
  fxhedge analyze --interactive`,
	RunE: runAnalyze,
}

var (
	analyzePair        string
	analyzeNotional    float64
	analyzeTenor       string
	analyzeRatio       float64
	analyzeView        string
	analyzeReference   string
	analyzeFutureSpot  float64
	analyzeOut         string
	analyzeNoExport    bool
	analyzeReport      bool
	analyzeInteractive bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	f := analyzeCmd.Flags()
	f.StringVarP(&analyzePair, "pair", "p", "USD/CAD", "currency pair, e.g. USD/CAD")
	f.Float64VarP(&analyzeNotional, "notional", "n", 5_000_000, "exposure in base currency units")
	f.StringVarP(&analyzeTenor, "tenor", "t", "6M", "hedge tenor: 1W, 1M, 2M, 3M, 6M, 9M, 1Y")
	f.Float64VarP(&analyzeRatio, "ratio", "r", 0.75, "hedge ratio between 0 and 1")
	f.StringVar(&analyzeView, "view", "neutral", "market view on the base currency: bullish, neutral, bearish")
	f.StringVar(&analyzeReference, "reference", "spot", "unhedged P&L reference: spot or forward")
	f.Float64Var(&analyzeFutureSpot, "future-spot", 0, "future spot for the ratio comparison (default: ladder midpoint)")
	f.StringVarP(&analyzeOut, "out", "o", "outputs", "output directory")
	f.BoolVar(&analyzeNoExport, "no-export", false, "skip CSV export")
	f.BoolVar(&analyzeReport, "report", false, "also write an Org-mode report")
	f.BoolVarP(&analyzeInteractive, "interactive", "i", false, "prompt for the analysis parameters")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("future-spot") {
		params.FutureSpot = analyzeFutureSpot
	}

	src, closeSrc, err := newSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	out := cmd.OutOrStdout()
	if analyzeInteractive {
		params = interactiveParams(cmd.InOrStdin(), out, src.Pairs(), params)
	}

	run, err := analysis.Execute(cmd.Context(), src, params)
	if err != nil {
		return err
	}
	printRun(out, run)

	var files []string
	if cfg.Output.Export {
		written, err := export.NewExporter(cfg.Output.Dir).Export(run)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		files = written.All()
		banner(out, "EXPORTS")
		for _, p := range files {
			fmt.Fprintf(out, "✓ %s\n", p)
		}
	}

	if cfg.Output.Report {
		path := filepath.Join(cfg.Output.Dir, fmt.Sprintf("hedge_report_%s_%s.org", run.Snapshot.Pair.Base+run.Snapshot.Pair.Quote, run.ID))
		if err := report.WriteFile(path, report.Report{Run: run, Files: files}); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		fmt.Fprintf(out, "✓ %s\n", path)
	}

	slog.Info("run finished", "run", run.ID, "exported", len(files))
	return nil
}

// applyAnalyzeFlags copies explicitly set flags over the config.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("pair") {
		cfg.Analysis.Pair = analyzePair
	}
	if f.Changed("notional") {
		cfg.Analysis.Notional = analyzeNotional
	}
	if f.Changed("tenor") {
		cfg.Analysis.Tenor = analyzeTenor
	}
	if f.Changed("ratio") {
		cfg.Analysis.HedgeRatio = analyzeRatio
	}
	if f.Changed("view") {
		cfg.Analysis.View = analyzeView
	}
	if f.Changed("reference") {
		cfg.Analysis.Reference = analyzeReference
	}
	if f.Changed("out") {
		cfg.Output.Dir = analyzeOut
	}
	if f.Changed("no-export") {
		cfg.Output.Export = !analyzeNoExport
	}
	if f.Changed("report") {
		cfg.Output.Report = analyzeReport
	}
}

// defaultParams are the parameters of the built-in example run.
func defaultParams() analysis.Params {
	return analysis.Params{
		Pair:       market.NewPair("USD", "CAD"),
		Notional:   5_000_000,
		Tenor:      market.SixMonths,
		HedgeRatio: 0.75,
		View:       market.Neutral,
		Reference:  hedge.ReferenceSpot,
	}
}
