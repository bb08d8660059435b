package recommend

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
)

var printer = message.NewPrinter(language.English)

// amount renders x rounded to whole units with thousands separators.
func amount(x float64) string {
	return printer.Sprintf("%d", int64(math.Round(x)))
}

func pct(r float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(r*100)))
}

func rationale(view market.MarketView, ratio float64, r hedge.Result, premium, worst, best float64, n int) string {
	pair := r.Pair
	var head string
	switch view {
	case market.Bullish:
		head = fmt.Sprintf("With a bullish view on %s, a %s hedge keeps part of the exposure open to capture upside while covering adverse moves.",
			pair.Base, pct(ratio))
	case market.Bearish:
		head = fmt.Sprintf("With a bearish view on %s, a %s hedge locks in the current forward rate and removes downside risk.",
			pair.Base, pct(ratio))
	default:
		head = fmt.Sprintf("With a neutral market view, a %s hedge protects the core exposure while leaving some flexibility.",
			pct(ratio))
	}
	return fmt.Sprintf("%s %s Across %d scenario(s) total P&L ranges from %s to %s %s.",
		head, forwardBasis(r.Tenor, premium), n, amount(worst), amount(best), pair.Quote)
}

func forwardBasis(tenor market.Tenor, premium float64) string {
	kind := "premium"
	if premium < 0 {
		kind = "discount"
	}
	return fmt.Sprintf("The %s forward trades at a %.4f%% %s to spot.", tenor, math.Abs(premium), kind)
}

func action(r hedge.Result, ratio float64) string {
	return fmt.Sprintf("Enter FX forward to sell %s %s vs %s at %.4f for %s settlement",
		amount(r.Notional*ratio), r.Pair.Base, r.Pair.Quote, r.ForwardRate, r.Tenor)
}
