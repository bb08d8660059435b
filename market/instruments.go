package market

import "math"

type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int
}

// Instruments lists the majors the tool quotes out of the box.
var Instruments = map[string]InstrumentMeta{
	"EUR_USD": {Name: "EUR_USD", BaseCurrency: "EUR", QuoteCurrency: "USD", PipLocation: -4},
	"GBP_USD": {Name: "GBP_USD", BaseCurrency: "GBP", QuoteCurrency: "USD", PipLocation: -4},
	"USD_JPY": {Name: "USD_JPY", BaseCurrency: "USD", QuoteCurrency: "JPY", PipLocation: -2},
	"USD_CAD": {Name: "USD_CAD", BaseCurrency: "USD", QuoteCurrency: "CAD", PipLocation: -4},
	"AUD_USD": {Name: "AUD_USD", BaseCurrency: "AUD", QuoteCurrency: "USD", PipLocation: -4},
	"USD_CHF": {Name: "USD_CHF", BaseCurrency: "USD", QuoteCurrency: "CHF", PipLocation: -4},
}

// MajorPairs is the display order used when listing pairs.
var MajorPairs = []CurrencyPair{
	{Base: "EUR", Quote: "USD"},
	{Base: "GBP", Quote: "USD"},
	{Base: "USD", Quote: "JPY"},
	{Base: "USD", Quote: "CAD"},
	{Base: "AUD", Quote: "USD"},
	{Base: "USD", Quote: "CHF"},
}

func pipSize(loc int) float64 {
	return math.Pow(10, float64(loc))
}
