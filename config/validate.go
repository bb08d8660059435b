package config

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := market.ParsePair(c.Analysis.Pair); err != nil {
		return fmt.Errorf("analysis.pair: %w", err)
	}
	if !(c.Analysis.Notional > 0) {
		return fmt.Errorf("analysis.notional must be positive")
	}
	if _, err := market.ParseTenor(c.Analysis.Tenor); err != nil {
		return fmt.Errorf("analysis.tenor: %w", err)
	}
	if !inUnit(c.Analysis.HedgeRatio) {
		return fmt.Errorf("analysis.hedge_ratio must be between 0 and 1")
	}
	if _, err := market.ParseView(c.Analysis.View); err != nil {
		return fmt.Errorf("analysis.view: %w", err)
	}
	if _, err := hedge.ParseReference(c.Analysis.Reference); err != nil {
		return fmt.Errorf("analysis.reference: %w", err)
	}

	switch c.Source.Kind {
	case "simulated":
	case "oanda":
		if strings.TrimSpace(c.Source.Token) == "" {
			return fmt.Errorf("source.token is required for the oanda source (or set OANDA_TOKEN)")
		}
	default:
		return fmt.Errorf("source.kind must be 'simulated' or 'oanda'")
	}
	if c.Source.Jitter < 0 || c.Source.Jitter >= 1 {
		return fmt.Errorf("source.jitter must be in [0, 1)")
	}
	if _, err := c.Source.ParseTimeout(); err != nil {
		return fmt.Errorf("source.timeout: %w", err)
	}
	for _, p := range c.Source.Pairs {
		if _, err := market.ParsePair(p); err != nil {
			return fmt.Errorf("source.pairs: %w", err)
		}
	}

	if _, err := normalizeRates(c.Rates); err != nil {
		return err
	}
	for ccy, r := range c.Rates {
		if len(ccy) != 3 {
			return fmt.Errorf("rates: %q is not a currency code", ccy)
		}
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= -1 {
			return fmt.Errorf("rates.%s must be a finite rate above -100%%", ccy)
		}
	}

	for _, s := range c.Scenarios.Shocks {
		if s <= -1 {
			return fmt.Errorf("scenarios.shocks: %v would make spot non-positive", s)
		}
	}
	for _, r := range c.Scenarios.Ratios {
		if !inUnit(r) {
			return fmt.Errorf("scenarios.ratios must be between 0 and 1")
		}
	}

	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("cache.addr is required when the cache is enabled")
	}
	if _, err := c.Cache.ParseTTL(); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty means
// info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q must be debug, info, warn or error", s)
	}
	return l, nil
}

func inUnit(x float64) bool {
	return x >= 0 && x <= 1
}
