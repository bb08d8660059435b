package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rustyeddy/fxhedge/analysis"
	"github.com/rustyeddy/fxhedge/export"
	"github.com/rustyeddy/fxhedge/forward"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
)

var printer = message.NewPrinter(language.English)

func amount(x float64) string {
	return printer.Sprintf("%d", int64(math.Round(x)))
}

func banner(w io.Writer, title string) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}

func printParams(w io.Writer, p analysis.Params) {
	banner(w, "ANALYSIS PARAMETERS")
	fmt.Fprintf(w, "Currency Pair:     %s\n", p.Pair)
	fmt.Fprintf(w, "Notional Exposure: %s\n", amount(p.Notional))
	fmt.Fprintf(w, "Hedging Tenor:     %s\n", p.Tenor)
	fmt.Fprintf(w, "Hedge Ratio:       %s\n", export.Percent(p.HedgeRatio))
	fmt.Fprintf(w, "Market View:       %s\n", p.View.Title())
	fmt.Fprintf(w, "Unhedged vs:       %s\n", p.Reference)
}

func printSnapshot(w io.Writer, s market.Snapshot) {
	fmt.Fprintf(w, "\nMarket data (%s, %s):\n", s.Source, s.AsOf.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  Spot %s:   %.4f\n", s.Pair, s.Spot)
	fmt.Fprintf(w, "  %s rate:       %.2f%%\n", s.Pair.Quote, s.DomesticRate*100)
	fmt.Fprintf(w, "  %s rate:       %.2f%%\n", s.Pair.Base, s.ForeignRate*100)
}

func printCurve(w io.Writer, c *forward.Curve) {
	fmt.Fprintf(w, "\nForward Curve for %s:\n", c.Pair())
	fmt.Fprintf(w, "  %-6s %12s %12s  %s\n", "Tenor", "Forward", "Points", "Settlement")
	for _, p := range c.Points() {
		fmt.Fprintf(w, "  %-6s %12.4f %12.2f  %s\n",
			p.Tenor, p.ForwardRate, p.ForwardPoints, p.SettlementDate.Format("2006-01-02"))
	}
}

func printCost(w io.Writer, c hedge.Cost) {
	fmt.Fprintf(w, "\nHedge Details:\n")
	fmt.Fprintf(w, "  Spot Rate:          %.4f\n", c.Spot)
	fmt.Fprintf(w, "  Forward Rate (%s):  %.4f\n", c.Tenor, c.ForwardRate)
	fmt.Fprintf(w, "  Forward Points:     %.2f (%.1f pips)\n", c.ForwardPoints, (c.ForwardRate-c.Spot)/c.Pair.PipSize())
	fmt.Fprintf(w, "  Premium/Discount:   %.4f%%\n", c.PremiumDiscountPct)
	fmt.Fprintf(w, "  Hedged Amount:      %s\n", amount(c.HedgedAmount))
	fmt.Fprintf(w, "  Unhedged Amount:    %s\n", amount(c.UnhedgedAmount))
	fmt.Fprintf(w, "  Settlement:         %s\n", c.SettlementDate.Format("2006-01-02"))
}

func printScenarios(w io.Writer, results []hedge.Result) {
	fmt.Fprintf(w, "\nP&L Across Future Spot Scenarios:\n")
	fmt.Fprintf(w, "  %10s %9s %15s %15s %15s %10s\n",
		"Future", "Chg %", "Hedged P&L", "Unhedged P&L", "Total P&L", "Effective")
	for _, r := range results {
		fmt.Fprintf(w, "  %10.4f %9.2f %15s %15s %15s %10.4f\n",
			r.FutureSpot, r.SpotChangePct, amount(r.HedgedPnL), amount(r.UnhedgedPnL), amount(r.TotalPnL), r.EffectiveRate)
	}
}

func printComparison(w io.Writer, at float64, results []hedge.Result) {
	fmt.Fprintf(w, "\nComparison at Future Spot = %.4f:\n", at)
	fmt.Fprintf(w, "  %6s %15s %15s %15s %10s\n", "Ratio", "Hedged", "Unhedged", "Total P&L", "Effective")
	for _, r := range results {
		fmt.Fprintf(w, "  %6s %15s %15s %15s %10.4f\n",
			export.Percent(r.HedgeRatio), amount(r.HedgedNotional), amount(r.UnhedgedNotional), amount(r.TotalPnL), r.EffectiveRate)
	}
}

func printRun(w io.Writer, run *analysis.Run) {
	printParams(w, run.Params)

	banner(w, "FORWARD CURVE")
	printSnapshot(w, run.Snapshot)
	printCurve(w, run.Curve)

	banner(w, "HEDGING STRATEGY")
	printCost(w, run.Cost)

	banner(w, "SCENARIO ANALYSIS")
	printScenarios(w, run.Scenarios)

	banner(w, "HEDGE RATIO COMPARISON")
	printComparison(w, run.ComparisonSpot, run.Comparison)

	banner(w, "RECOMMENDATION")
	rec := run.Recommendation
	fmt.Fprintf(w, "\nRecommended Strategy: %s Hedge Ratio\n", export.Percent(rec.SuggestedHedgeRatio))
	fmt.Fprintf(w, "Forward Premium/Discount: %.4f%%\n", rec.PremiumDiscountPct)
	fmt.Fprintf(w, "\nRationale:\n%s\n", rec.Rationale)
	fmt.Fprintf(w, "\nSuggested Action:\n%s\n", rec.Action)
}
