package config

import (
	"strings"

	"github.com/rustyeddy/fxhedge/analysis"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
	"github.com/rustyeddy/fxhedge/recommend"
)

// Params converts the analysis section into run parameters.
func (c *Config) Params() (analysis.Params, error) {
	pair, err := market.ParsePair(c.Analysis.Pair)
	if err != nil {
		return analysis.Params{}, err
	}
	tenor, err := market.ParseTenor(c.Analysis.Tenor)
	if err != nil {
		return analysis.Params{}, err
	}
	view, err := market.ParseView(c.Analysis.View)
	if err != nil {
		return analysis.Params{}, err
	}
	ref, err := hedge.ParseReference(c.Analysis.Reference)
	if err != nil {
		return analysis.Params{}, err
	}

	return analysis.Params{
		Pair:       pair,
		Notional:   c.Analysis.Notional,
		Tenor:      tenor,
		HedgeRatio: c.Analysis.HedgeRatio,
		View:       view,
		Reference:  ref,
		Shocks:     c.Scenarios.Shocks,
		Ratios:     c.Scenarios.Ratios,
		Policy:     c.Policy(),
	}, nil
}

func (c *Config) Policy() recommend.ViewPolicy {
	return recommend.ViewPolicy{
		Bullish: c.Recommend.Bullish,
		Neutral: c.Recommend.Neutral,
		Bearish: c.Recommend.Bearish,
	}
}

// InterestRates returns the rate table with upper-cased currency codes.
func (c *Config) InterestRates() market.InterestRates {
	out := make(market.InterestRates, len(c.Rates))
	for ccy, r := range c.Rates {
		out[strings.ToUpper(ccy)] = r
	}
	return out
}

// SourcePairs returns the configured pairs, or nil to let the source decide.
func (c *Config) SourcePairs() ([]market.CurrencyPair, error) {
	if len(c.Source.Pairs) == 0 {
		return nil, nil
	}
	out := make([]market.CurrencyPair, 0, len(c.Source.Pairs))
	for _, s := range c.Source.Pairs {
		p, err := market.ParsePair(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
