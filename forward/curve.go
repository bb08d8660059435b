// Package forward builds FX forward curves from a market snapshot using
// covered interest rate parity.
package forward

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxhedge/market"
)

// PipsPerUnit converts a rate difference into forward points.
const PipsPerUnit = 10_000.0

// Point is the forward quote for one tenor.
type Point struct {
	Tenor          market.Tenor
	ForwardRate    float64
	ForwardPoints  float64 // pips, signed
	SettlementDate time.Time
}

// Curve holds exactly one Point per market tenor, in tenor order.
type Curve struct {
	pair   market.CurrencyPair
	spot   float64
	asOf   time.Time
	points []Point
}

// ForwardRate prices an outright forward:
//
//	F = S * (1 + rd*t) / (1 + rf*t)
func ForwardRate(spot, domestic, foreign, years float64) float64 {
	return spot * (1 + domestic*years) / (1 + foreign*years)
}

// BuildCurve prices every tenor off the snapshot. It fails with
// market.ErrInvalidInput for a non-positive spot or an undefined rate.
func BuildCurve(s market.Snapshot) (*Curve, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("build curve %s: %w", s.Pair, err)
	}

	all := market.Tenors()
	c := &Curve{
		pair:   s.Pair,
		spot:   s.Spot,
		asOf:   s.AsOf,
		points: make([]Point, 0, len(all)),
	}

	for _, tn := range all {
		fwd := s.Spot
		if tn != market.Spot {
			fwd = ForwardRate(s.Spot, s.DomesticRate, s.ForeignRate, tn.Years())
		}
		c.points = append(c.points, Point{
			Tenor:          tn,
			ForwardRate:    fwd,
			ForwardPoints:  (fwd - s.Spot) * PipsPerUnit,
			SettlementDate: tn.SettlementDate(s.AsOf),
		})
	}
	return c, nil
}

func (c *Curve) Pair() market.CurrencyPair { return c.pair }
func (c *Curve) Spot() float64             { return c.spot }
func (c *Curve) AsOf() time.Time           { return c.asOf }

// Point returns the quote for tenor t.
func (c *Curve) Point(t market.Tenor) (Point, error) {
	for _, p := range c.points {
		if p.Tenor == t {
			return p, nil
		}
	}
	return Point{}, fmt.Errorf("curve %s: tenor %s: %w", c.pair, t, market.ErrUnknownTenor)
}

// Points returns a copy of the curve in tenor order.
func (c *Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// PremiumDiscountPct is the forward premium (positive) or discount
// (negative) of tenor t versus spot, in percent.
func (c *Curve) PremiumDiscountPct(t market.Tenor) (float64, error) {
	p, err := c.Point(t)
	if err != nil {
		return 0, err
	}
	return (p.ForwardRate - c.spot) / c.spot * 100, nil
}
