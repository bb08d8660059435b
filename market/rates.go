package market

import (
	"fmt"
	"strings"
)

// InterestRates maps a currency code to its annualized interest rate.
type InterestRates map[string]float64

// DefaultInterestRates are illustrative policy rates as of December 2024.
func DefaultInterestRates() InterestRates {
	return InterestRates{
		"USD": 0.0450,
		"EUR": 0.0300,
		"GBP": 0.0475,
		"JPY": 0.0010,
		"CAD": 0.0375,
		"AUD": 0.0400,
		"CHF": 0.0125,
	}
}

func (r InterestRates) Rate(ccy string) (float64, error) {
	v, ok := r[strings.ToUpper(ccy)]
	if !ok {
		return 0, fmt.Errorf("no interest rate for %s: %w", ccy, ErrDataUnavailable)
	}
	return v, nil
}

// ForPair returns (domestic, foreign) rates for the pair: the quote currency
// is domestic and the base currency is foreign.
func (r InterestRates) ForPair(p CurrencyPair) (domestic, foreign float64, err error) {
	domestic, err = r.Rate(p.Quote)
	if err != nil {
		return 0, 0, err
	}
	foreign, err = r.Rate(p.Base)
	if err != nil {
		return 0, 0, err
	}
	return domestic, foreign, nil
}
