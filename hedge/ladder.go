package hedge

import (
	"fmt"

	"github.com/rustyeddy/fxhedge/market"
)

// DefaultShocks move spot by -10%, -5%, 0, +5% and +10%.
var DefaultShocks = []float64{-0.10, -0.05, 0, 0.05, 0.10}

// DefaultRatios are the hedge ratios compared by default.
var DefaultRatios = []float64{0, 0.25, 0.50, 0.75, 1.0}

// SpotLadder returns spot*(1+shock) for each shock, in order.
func SpotLadder(spot float64, shocks []float64) ([]float64, error) {
	if err := validatePositive("spot", spot); err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(shocks))
	for _, s := range shocks {
		if s <= -1 {
			return nil, fmt.Errorf("spot shock %v would make spot non-positive: %w", s, market.ErrInvalidInput)
		}
		out = append(out, spot*(1+s))
	}
	return out, nil
}

// Midpoint returns the middle element of an ordered ladder. Hedge ratios
// are compared at this spot unless the caller supplies one.
func Midpoint(spots []float64) (float64, error) {
	if len(spots) == 0 {
		return 0, fmt.Errorf("empty spot ladder: %w", market.ErrInvalidInput)
	}
	return spots[len(spots)/2], nil
}
