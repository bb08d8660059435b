package hedge

import (
	"time"

	"github.com/rustyeddy/fxhedge/forward"
	"github.com/rustyeddy/fxhedge/market"
)

// Cost summarizes what locking in a forward hedge looks like today.
type Cost struct {
	Pair               market.CurrencyPair
	Tenor              market.Tenor
	Notional           float64
	HedgeRatio         float64
	HedgedAmount       float64
	UnhedgedAmount     float64
	Spot               float64
	ForwardRate        float64
	ForwardPoints      float64
	PremiumDiscountPct float64
	SettlementDate     time.Time
}

func HedgeCost(c *forward.Curve, tenor market.Tenor, notional, hedgeRatio float64) (Cost, error) {
	if err := validateRatio(hedgeRatio); err != nil {
		return Cost{}, err
	}
	if err := validatePositive("notional", notional); err != nil {
		return Cost{}, err
	}
	pt, err := c.Point(tenor)
	if err != nil {
		return Cost{}, err
	}
	pct, err := c.PremiumDiscountPct(tenor)
	if err != nil {
		return Cost{}, err
	}

	return Cost{
		Pair:               c.Pair(),
		Tenor:              tenor,
		Notional:           notional,
		HedgeRatio:         hedgeRatio,
		HedgedAmount:       notional * hedgeRatio,
		UnhedgedAmount:     notional * (1 - hedgeRatio),
		Spot:               c.Spot(),
		ForwardRate:        pt.ForwardRate,
		ForwardPoints:      pt.ForwardPoints,
		PremiumDiscountPct: pct,
		SettlementDate:     pt.SettlementDate,
	}, nil
}
