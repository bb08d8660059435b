// Package ratesource supplies market snapshots for a currency pair, either
// from a built-in simulator or from a live OANDA feed.
package ratesource

import (
	"context"

	"github.com/rustyeddy/fxhedge/market"
)

// Source returns a snapshot for a pair. Failures wrap
// market.ErrDataUnavailable; a Source never retries on its own.
type Source interface {
	Snapshot(ctx context.Context, pair market.CurrencyPair) (market.Snapshot, error)
	Pairs() []market.CurrencyPair
	Name() string
}

// Snapshots fetches every pair the source quotes, in source order. The
// first failure aborts the batch.
func Snapshots(ctx context.Context, src Source) ([]market.Snapshot, error) {
	pairs := src.Pairs()
	out := make([]market.Snapshot, 0, len(pairs))
	for _, p := range pairs {
		s, err := src.Snapshot(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
