package ratesource

import (
	"sort"

	"github.com/rustyeddy/fxhedge/market"
)

func orderedPairs[V any](m map[market.CurrencyPair]V) []market.CurrencyPair {
	out := make([]market.CurrencyPair, 0, len(m))
	seen := make(map[market.CurrencyPair]bool, len(m))
	for _, p := range market.MajorPairs {
		if _, ok := m[p]; ok {
			out = append(out, p)
			seen[p] = true
		}
	}
	var extra []market.CurrencyPair
	for p := range m {
		if !seen[p] {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].String() < extra[j].String() })
	return append(out, extra...)
}
