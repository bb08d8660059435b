package market

import (
	"fmt"
	"strings"
)

// CurrencyPair is an ordered (base, quote) pair. A rate for the pair is
// quoted as units of quote per one unit of base.
type CurrencyPair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

// NewPair returns the pair base/quote with upper-cased codes.
func NewPair(base, quote string) CurrencyPair {
	return CurrencyPair{
		Base:  strings.ToUpper(strings.TrimSpace(base)),
		Quote: strings.ToUpper(strings.TrimSpace(quote)),
	}
}

// ParsePair accepts "USD/CAD", "USD_CAD", "usdcad" and "USDCAD=X".
func ParsePair(s string) (CurrencyPair, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "=X")

	var base, quote string
	switch {
	case strings.Contains(s, "/"):
		base, quote, _ = strings.Cut(s, "/")
	case strings.Contains(s, "_"):
		base, quote, _ = strings.Cut(s, "_")
	case len(s) == 6:
		base, quote = s[:3], s[3:]
	default:
		return CurrencyPair{}, fmt.Errorf("parse pair %q: %w", s, ErrInvalidInput)
	}

	p := NewPair(base, quote)
	if err := p.Validate(); err != nil {
		return CurrencyPair{}, err
	}
	return p, nil
}

func (p CurrencyPair) Validate() error {
	if !isCode(p.Base) || !isCode(p.Quote) {
		return fmt.Errorf("pair %q: currency codes must be 3 letters: %w", p.String(), ErrInvalidInput)
	}
	if p.Base == p.Quote {
		return fmt.Errorf("pair %q: base equals quote: %w", p.String(), ErrInvalidInput)
	}
	return nil
}

func (p CurrencyPair) String() string {
	return p.Base + "/" + p.Quote
}

// Instrument returns the OANDA instrument name, e.g. "USD_CAD".
func (p CurrencyPair) Instrument() string {
	return p.Base + "_" + p.Quote
}

// PipSize is the price increment of one pip for the pair.
func (p CurrencyPair) PipSize() float64 {
	if meta, ok := Instruments[p.Instrument()]; ok {
		return pipSize(meta.PipLocation)
	}
	if p.Quote == "JPY" {
		return 0.01
	}
	return 0.0001
}

func isCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
