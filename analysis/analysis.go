// Package analysis runs one end-to-end hedging analysis: it fetches a
// snapshot, builds the forward curve, prices the hedge, runs the spot
// ladder, compares hedge ratios and asks a policy for a recommendation.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/fxhedge/forward"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
	"github.com/rustyeddy/fxhedge/pkg/id"
	"github.com/rustyeddy/fxhedge/ratesource"
	"github.com/rustyeddy/fxhedge/recommend"
)

// Params describe a run. Zero Shocks, Ratios or Policy fall back to the
// package defaults; a zero FutureSpot compares ratios at the ladder midpoint.
type Params struct {
	Pair       market.CurrencyPair
	Notional   float64
	Tenor      market.Tenor
	HedgeRatio float64
	View       market.MarketView
	Reference  hedge.Reference
	FutureSpot float64

	Shocks []float64
	Ratios []float64
	Policy recommend.Policy
}

// Run is the complete output of one analysis. It is produced whole or not
// at all.
type Run struct {
	ID             string
	StartedAt      time.Time
	Params         Params
	Snapshot       market.Snapshot
	Curve          *forward.Curve
	Cost           hedge.Cost
	Scenarios      []hedge.Result
	ComparisonSpot float64
	Comparison     []hedge.Result
	Recommendation recommend.Recommendation
}

func (p Params) withDefaults() Params {
	if len(p.Shocks) == 0 {
		p.Shocks = hedge.DefaultShocks
	}
	if len(p.Ratios) == 0 {
		p.Ratios = hedge.DefaultRatios
	}
	if p.Policy == nil {
		p.Policy = recommend.DefaultPolicy()
	}
	return p
}

// Validate checks the parameters that can be checked before any data is
// fetched.
func (p Params) Validate() error {
	if err := p.Pair.Validate(); err != nil {
		return err
	}
	if !(p.Notional > 0) {
		return fmt.Errorf("notional %v must be positive: %w", p.Notional, market.ErrInvalidInput)
	}
	if !p.Tenor.Valid() {
		return fmt.Errorf("tenor %d: %w", int(p.Tenor), market.ErrUnknownTenor)
	}
	if !(p.HedgeRatio >= 0 && p.HedgeRatio <= 1) {
		return fmt.Errorf("hedge ratio %v must be within [0, 1]: %w", p.HedgeRatio, market.ErrInvalidInput)
	}
	if _, err := market.ParseView(string(p.View)); err != nil {
		return err
	}
	if p.FutureSpot < 0 {
		return fmt.Errorf("future spot %v must be positive: %w", p.FutureSpot, market.ErrInvalidInput)
	}
	return nil
}

// Execute performs a run against src.
func Execute(ctx context.Context, src ratesource.Source, params Params) (*Run, error) {
	p := params.withDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// The run ID carries StartedAt so reports can recover it.
	now := time.Now()
	run := &Run{ID: id.At(now), StartedAt: now, Params: p}
	log := slog.With("run", run.ID, "pair", p.Pair.String(), "tenor", p.Tenor.String())

	snap, err := src.Snapshot(ctx, p.Pair)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.Pair, err)
	}
	log.Debug("snapshot", "spot", snap.Spot, "rd", snap.DomesticRate, "rf", snap.ForeignRate, "source", snap.Source)

	curve, err := forward.BuildCurve(snap)
	if err != nil {
		return nil, err
	}

	cost, err := hedge.HedgeCost(curve, p.Tenor, p.Notional, p.HedgeRatio)
	if err != nil {
		return nil, err
	}

	ladder, err := hedge.SpotLadder(curve.Spot(), p.Shocks)
	if err != nil {
		return nil, err
	}
	scenarios, err := hedge.RunScenarios(curve, p.Tenor, p.Notional, p.HedgeRatio, p.Reference, ladder)
	if err != nil {
		return nil, err
	}

	at := p.FutureSpot
	if at == 0 {
		if at, err = hedge.Midpoint(ladder); err != nil {
			return nil, err
		}
	}
	comparison, err := hedge.CompareHedgeRatios(curve, p.Tenor, p.Notional, at, p.Reference, p.Ratios)
	if err != nil {
		return nil, err
	}

	rec, err := p.Policy.Recommend(scenarios, p.View)
	if err != nil {
		return nil, err
	}

	run.Snapshot = snap
	run.Curve = curve
	run.Cost = cost
	run.Scenarios = scenarios
	run.ComparisonSpot = at
	run.Comparison = comparison
	run.Recommendation = rec

	log.Info("analysis complete",
		"forward", cost.ForwardRate,
		"points", cost.ForwardPoints,
		"suggested_ratio", rec.SuggestedHedgeRatio,
	)
	return run, nil
}
