package ratesource

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/fxhedge/market"
)

// SpotFeed is the part of oanda.Client the live source depends on.
type SpotFeed interface {
	LatestMid(ctx context.Context, instrument string) (float64, time.Time, error)
}

// OANDA takes the spot from a live feed and interest rates from a table.
type OANDA struct {
	feed  SpotFeed
	rates market.InterestRates
	pairs []market.CurrencyPair
}

func NewOANDA(feed SpotFeed, rates market.InterestRates, pairs []market.CurrencyPair) *OANDA {
	if len(rates) == 0 {
		rates = market.DefaultInterestRates()
	}
	if len(pairs) == 0 {
		pairs = market.MajorPairs
	}
	return &OANDA{feed: feed, rates: rates, pairs: pairs}
}

func (o *OANDA) Name() string { return "oanda" }

func (o *OANDA) Pairs() []market.CurrencyPair {
	out := make([]market.CurrencyPair, len(o.pairs))
	copy(out, o.pairs)
	return out
}

func (o *OANDA) Snapshot(ctx context.Context, pair market.CurrencyPair) (market.Snapshot, error) {
	rd, rf, err := o.rates.ForPair(pair)
	if err != nil {
		return market.Snapshot{}, fmt.Errorf("oanda %s: %w", pair, err)
	}

	spot, ts, err := o.feed.LatestMid(ctx, pair.Instrument())
	if err != nil {
		return market.Snapshot{}, fmt.Errorf("oanda %s: %v: %w", pair, err, market.ErrDataUnavailable)
	}
	if !(spot > 0) {
		return market.Snapshot{}, fmt.Errorf("oanda %s: non-positive spot %v: %w", pair, spot, market.ErrDataUnavailable)
	}

	return market.Snapshot{
		Pair:         pair,
		Spot:         spot,
		DomesticRate: rd,
		ForeignRate:  rf,
		AsOf:         ts,
		Source:       o.Name(),
	}, nil
}
