package market

import (
	"fmt"
	"math"
	"time"
)

// Snapshot is the market state an analysis run prices from. It is created
// once per run by a rate source and never modified.
type Snapshot struct {
	Pair         CurrencyPair `json:"pair"`
	Spot         float64      `json:"spot"`
	DomesticRate float64      `json:"domestic_rate"`
	ForeignRate  float64      `json:"foreign_rate"`
	AsOf         time.Time    `json:"as_of"`
	Source       string       `json:"source"`
}

// Validate rejects snapshots that would price to NaN or negative forwards.
func (s Snapshot) Validate() error {
	if !(s.Spot > 0) || math.IsInf(s.Spot, 0) {
		return fmt.Errorf("spot %v must be positive: %w", s.Spot, ErrInvalidInput)
	}
	if err := checkRate("domestic", s.DomesticRate); err != nil {
		return err
	}
	if err := checkRate("foreign", s.ForeignRate); err != nil {
		return err
	}
	return nil
}

func checkRate(name string, r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("%s rate is undefined: %w", name, ErrInvalidInput)
	}
	if r <= -1 {
		return fmt.Errorf("%s rate %v must be greater than -100%%: %w", name, r, ErrInvalidInput)
	}
	return nil
}
