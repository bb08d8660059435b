// Package hedge evaluates forward hedges of an FX exposure under
// hypothetical future spot rates.
package hedge

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/fxhedge/forward"
	"github.com/rustyeddy/fxhedge/market"
)

// Reference selects the rate the unhedged leg's P&L is measured against.
type Reference int

const (
	referenceUnset Reference = iota
	// ReferenceSpot measures the open leg against spot at inception.
	ReferenceSpot
	// ReferenceForward measures the open leg against the tenor's forward.
	ReferenceForward
)

func (r Reference) String() string {
	switch r {
	case ReferenceSpot:
		return "spot"
	case ReferenceForward:
		return "forward"
	}
	return "unset"
}

func ParseReference(s string) (Reference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spot", "inception":
		return ReferenceSpot, nil
	case "forward":
		return ReferenceForward, nil
	}
	return referenceUnset, fmt.Errorf("reference %q (want spot or forward): %w", s, market.ErrInvalidInput)
}

// Scenario is one what-if case.
type Scenario struct {
	Notional   float64
	Tenor      market.Tenor
	HedgeRatio float64
	FutureSpot float64
	Reference  Reference
}

// Result is the outcome of evaluating a Scenario against a curve.
type Result struct {
	Pair             market.CurrencyPair
	Tenor            market.Tenor
	Reference        Reference
	Notional         float64
	HedgeRatio       float64
	Spot             float64
	FutureSpot       float64
	SpotChangePct    float64
	ForwardRate      float64
	ReferenceRate    float64
	HedgedNotional   float64
	UnhedgedNotional float64
	HedgedPnL        float64
	UnhedgedPnL      float64
	TotalPnL         float64
	EffectiveRate    float64
}

// Evaluate prices one scenario. The hedged leg is locked at the tenor's
// forward rate; the open leg settles at the future spot and is measured
// against the scenario's reference rate.
func Evaluate(c *forward.Curve, s Scenario) (Result, error) {
	if err := validateRatio(s.HedgeRatio); err != nil {
		return Result{}, err
	}
	if err := validatePositive("notional", s.Notional); err != nil {
		return Result{}, err
	}
	if err := validatePositive("future spot", s.FutureSpot); err != nil {
		return Result{}, err
	}

	pt, err := c.Point(s.Tenor)
	if err != nil {
		return Result{}, err
	}

	var ref float64
	switch s.Reference {
	case ReferenceSpot:
		ref = c.Spot()
	case ReferenceForward:
		ref = pt.ForwardRate
	default:
		return Result{}, fmt.Errorf("unhedged reference rate not set: %w", market.ErrInvalidInput)
	}

	fwd := pt.ForwardRate
	hedged := s.Notional * s.HedgeRatio
	unhedged := s.Notional * (1 - s.HedgeRatio)
	hedgedPnL := hedged * (fwd - s.FutureSpot)
	unhedgedPnL := unhedged * (s.FutureSpot - ref)

	return Result{
		Pair:             c.Pair(),
		Tenor:            s.Tenor,
		Reference:        s.Reference,
		Notional:         s.Notional,
		HedgeRatio:       s.HedgeRatio,
		Spot:             c.Spot(),
		FutureSpot:       s.FutureSpot,
		SpotChangePct:    (s.FutureSpot - c.Spot()) / c.Spot() * 100,
		ForwardRate:      fwd,
		ReferenceRate:    ref,
		HedgedNotional:   hedged,
		UnhedgedNotional: unhedged,
		HedgedPnL:        hedgedPnL,
		UnhedgedPnL:      unhedgedPnL,
		TotalPnL:         hedgedPnL + unhedgedPnL,
		EffectiveRate:    (hedged*fwd + unhedged*s.FutureSpot) / s.Notional,
	}, nil
}

// CompareHedgeRatios evaluates one scenario per ratio at a single future
// spot. Results follow the order of ratios.
func CompareHedgeRatios(c *forward.Curve, tenor market.Tenor, notional, futureSpot float64, ref Reference, ratios []float64) ([]Result, error) {
	out := make([]Result, 0, len(ratios))
	for _, h := range ratios {
		r, err := Evaluate(c, Scenario{
			Notional:   notional,
			Tenor:      tenor,
			HedgeRatio: h,
			FutureSpot: futureSpot,
			Reference:  ref,
		})
		if err != nil {
			return nil, fmt.Errorf("compare ratio %v: %w", h, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// RunScenarios evaluates one scenario per future spot at a fixed hedge
// ratio. Results follow the order of spots.
func RunScenarios(c *forward.Curve, tenor market.Tenor, notional, hedgeRatio float64, ref Reference, spots []float64) ([]Result, error) {
	out := make([]Result, 0, len(spots))
	for _, s := range spots {
		r, err := Evaluate(c, Scenario{
			Notional:   notional,
			Tenor:      tenor,
			HedgeRatio: hedgeRatio,
			FutureSpot: s,
			Reference:  ref,
		})
		if err != nil {
			return nil, fmt.Errorf("scenario spot %v: %w", s, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func validateRatio(h float64) error {
	if math.IsNaN(h) || h < 0 || h > 1 {
		return fmt.Errorf("hedge ratio %v outside [0,1]: %w", h, market.ErrInvalidInput)
	}
	return nil
}

func validatePositive(name string, x float64) error {
	if !(x > 0) || math.IsInf(x, 0) {
		return fmt.Errorf("%s %v must be positive: %w", name, x, market.ErrInvalidInput)
	}
	return nil
}
