// Package export writes analysis results as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fxhedge/forward"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
)

const (
	ratePlaces  = 4
	moneyPlaces = 2
)

var (
	CurveHeader      = []string{"Pair", "Tenor", "Days", "Forward_Rate", "Forward_Points", "Settlement_Date"}
	ScenarioHeader   = []string{"Future_Spot", "Spot_Change_pct", "Hedged_PnL", "Unhedged_PnL", "Total_PnL", "Effective_Rate"}
	ComparisonHeader = []string{"Hedge_Ratio", "Hedged_Amount", "Unhedged_Amount", "Total_PnL", "Effective_Rate"}
)

func WriteCurve(w io.Writer, c *forward.Curve) error {
	rows := make([][]string, 0, len(market.Tenors()))
	for _, p := range c.Points() {
		rows = append(rows, []string{
			c.Pair().String(),
			p.Tenor.String(),
			strconv.Itoa(p.Tenor.Days()),
			fixed(p.ForwardRate, ratePlaces),
			fixed(p.ForwardPoints, moneyPlaces),
			p.SettlementDate.Format("2006-01-02"),
		})
	}
	return write(w, CurveHeader, rows)
}

func WriteScenarios(w io.Writer, results []hedge.Result) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			fixed(r.FutureSpot, ratePlaces),
			fixed(r.SpotChangePct, moneyPlaces),
			fixed(r.HedgedPnL, moneyPlaces),
			fixed(r.UnhedgedPnL, moneyPlaces),
			fixed(r.TotalPnL, moneyPlaces),
			fixed(r.EffectiveRate, ratePlaces),
		})
	}
	return write(w, ScenarioHeader, rows)
}

func WriteComparison(w io.Writer, results []hedge.Result) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			Percent(r.HedgeRatio),
			fixed(r.HedgedNotional, moneyPlaces),
			fixed(r.UnhedgedNotional, moneyPlaces),
			fixed(r.TotalPnL, moneyPlaces),
			fixed(r.EffectiveRate, ratePlaces),
		})
	}
	return write(w, ComparisonHeader, rows)
}

// Percent renders a ratio as a whole percentage, e.g. 0.75 -> "75%".
func Percent(ratio float64) string {
	return decimal.NewFromFloat(ratio).Shift(2).StringFixed(0) + "%"
}

func fixed(x float64, places int32) string {
	return decimal.NewFromFloat(x).StringFixed(places)
}

func write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}
