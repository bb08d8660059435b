// Package recommend turns a market view and a set of hedge scenario results
// into a suggested hedge ratio with a human-readable rationale.
package recommend

import (
	"fmt"
	"math"

	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
)

// Recommendation is advisory output; it is not an optimization result.
type Recommendation struct {
	View                market.MarketView
	SuggestedHedgeRatio float64
	Rationale           string
	Action              string

	// Forward premium (positive) or discount (negative) versus spot, in
	// percent, at the tenor the results were priced for.
	PremiumDiscountPct float64

	// Total P&L range across the results the advice was based on.
	WorstPnL float64
	BestPnL  float64
}

// Policy maps a market view and scenario results to a Recommendation.
// Implementations must be deterministic.
type Policy interface {
	Recommend(results []hedge.Result, view market.MarketView) (Recommendation, error)
}

// ViewPolicy suggests a fixed ratio per view: lower when bullish on the
// base currency to keep upside, full cover when bearish.
type ViewPolicy struct {
	Bullish float64 // 0.50
	Neutral float64 // 0.75
	Bearish float64 // 1.00
}

func DefaultPolicy() ViewPolicy {
	return ViewPolicy{Bullish: 0.50, Neutral: 0.75, Bearish: 1.00}
}

// Validate checks every ratio lies in [0,1] and that the ordering
// bullish <= neutral <= bearish holds.
func (p ViewPolicy) Validate() error {
	for _, r := range []struct {
		name string
		v    float64
	}{{"bullish", p.Bullish}, {"neutral", p.Neutral}, {"bearish", p.Bearish}} {
		if math.IsNaN(r.v) || r.v < 0 || r.v > 1 {
			return fmt.Errorf("%s hedge ratio %v outside [0,1]: %w", r.name, r.v, market.ErrInvalidInput)
		}
	}
	if p.Bullish > p.Neutral || p.Neutral > p.Bearish {
		return fmt.Errorf("hedge ratios must satisfy bullish <= neutral <= bearish: %w", market.ErrInvalidInput)
	}
	return nil
}

func (p ViewPolicy) ratio(view market.MarketView) (float64, error) {
	switch view {
	case market.Bullish:
		return p.Bullish, nil
	case market.Neutral:
		return p.Neutral, nil
	case market.Bearish:
		return p.Bearish, nil
	}
	return 0, fmt.Errorf("market view %q: %w", view, market.ErrInvalidInput)
}

func (p ViewPolicy) Recommend(results []hedge.Result, view market.MarketView) (Recommendation, error) {
	if len(results) == 0 {
		return Recommendation{}, fmt.Errorf("recommend: no scenario results: %w", market.ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return Recommendation{}, err
	}
	ratio, err := p.ratio(view)
	if err != nil {
		return Recommendation{}, err
	}

	first := results[0]
	if first.Spot <= 0 {
		return Recommendation{}, fmt.Errorf("recommend: spot %v not positive: %w", first.Spot, market.ErrInvalidInput)
	}
	worst, best := pnlRange(results)
	premium := (first.ForwardRate - first.Spot) / first.Spot * 100

	return Recommendation{
		View:                view,
		SuggestedHedgeRatio: ratio,
		Rationale:           rationale(view, ratio, first, premium, worst, best, len(results)),
		Action:              action(first, ratio),
		PremiumDiscountPct:  premium,
		WorstPnL:            worst,
		BestPnL:             best,
	}, nil
}

func pnlRange(results []hedge.Result) (worst, best float64) {
	worst, best = results[0].TotalPnL, results[0].TotalPnL
	for _, r := range results[1:] {
		if r.TotalPnL < worst {
			worst = r.TotalPnL
		}
		if r.TotalPnL > best {
			best = r.TotalPnL
		}
	}
	return worst, best
}
