package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rustyeddy/fxhedge/analysis"
	"github.com/rustyeddy/fxhedge/market"
)

// interactiveParams prompts for pair, notional, tenor, ratio and view. An
// empty answer keeps the value from current. Any invalid answer abandons the
// prompts and the built-in example parameters are used instead.
func interactiveParams(in io.Reader, out io.Writer, pairs []market.CurrencyPair, current analysis.Params) analysis.Params {
	banner(out, "INTERACTIVE MODE")

	p, err := promptParams(bufio.NewScanner(in), out, pairs, current)
	if err != nil {
		slog.Warn("invalid interactive input", "error", err)
		fmt.Fprintf(out, "\nInvalid input: %v\nRunning with default parameters...\n", err)

		def := defaultParams()
		def.Shocks = current.Shocks
		def.Ratios = current.Ratios
		def.Policy = current.Policy
		return def
	}
	return p
}

func promptParams(sc *bufio.Scanner, out io.Writer, pairs []market.CurrencyPair, p analysis.Params) (analysis.Params, error) {
	if len(pairs) == 0 {
		return p, errors.New("the rate source lists no currency pairs")
	}

	fmt.Fprintf(out, "\nAvailable Currency Pairs:\n")
	for i, cp := range pairs {
		fmt.Fprintf(out, "  %d. %s\n", i+1, cp)
	}
	if s := ask(sc, out, fmt.Sprintf("\nSelect currency pair (1-%d) [%s]: ", len(pairs), p.Pair)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(pairs) {
			return p, fmt.Errorf("pair selection %q is not between 1 and %d", s, len(pairs))
		}
		p.Pair = pairs[n-1]
	}

	if s := ask(sc, out, fmt.Sprintf("Enter exposure amount [%s]: ", amount(p.Notional))); s != "" {
		n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil || !(n > 0) {
			return p, fmt.Errorf("exposure amount %q must be a positive number", s)
		}
		p.Notional = n
	}

	fmt.Fprintf(out, "\nAvailable tenors: 1W, 1M, 2M, 3M, 6M, 9M, 1Y\n")
	if s := ask(sc, out, fmt.Sprintf("Select tenor [%s]: ", p.Tenor)); s != "" {
		t, err := market.ParseTenor(s)
		if err != nil {
			return p, err
		}
		p.Tenor = t
	}

	if s := ask(sc, out, fmt.Sprintf("Enter hedge ratio (0.0 to 1.0) [%.2f]: ", p.HedgeRatio)); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil || r < 0 || r > 1 {
			return p, fmt.Errorf("hedge ratio %q must be between 0 and 1", s)
		}
		p.HedgeRatio = r
	}

	fmt.Fprintf(out, "\nMarket views: bullish, neutral, bearish\n")
	if s := ask(sc, out, fmt.Sprintf("Enter market view [%s]: ", p.View)); s != "" {
		v, err := market.ParseView(s)
		if err != nil {
			return p, err
		}
		p.View = v
	}

	return p, nil
}

// ask prints prompt and returns the trimmed answer; "" at end of input.
func ask(sc *bufio.Scanner, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}
