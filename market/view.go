package market

import (
	"fmt"
	"strings"
)

// MarketView is the user's outlook on the base currency of the pair.
type MarketView string

const (
	Bullish MarketView = "bullish"
	Neutral MarketView = "neutral"
	Bearish MarketView = "bearish"
)

func ParseView(s string) (MarketView, error) {
	v := MarketView(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case Bullish, Neutral, Bearish:
		return v, nil
	}
	return "", fmt.Errorf("market view %q (want bullish, neutral or bearish): %w", s, ErrInvalidInput)
}

// Title returns the view capitalized for display, e.g. "Neutral".
func (v MarketView) Title() string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(string(v[:1])) + string(v[1:])
}
