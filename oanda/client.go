// Package oanda is a minimal client for the OANDA v3 REST API, used to
// read the latest spot mid for a currency pair.
package oanda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rustyeddy/fxhedge/market"
)

const (
	// PracticeURL is the URL for OANDA's practice/demo environment
	PracticeURL = "https://api-fxpractice.oanda.com"
	// LiveURL is the URL for OANDA's live trading environment
	LiveURL = "https://api-fxtrade.oanda.com"
)

// ErrNoCandles is returned when the API answers without a complete candle.
var ErrNoCandles = errors.New("oanda: no complete candles")

// Granularity represents the time frame for candles
type Granularity string

const (
	S5 Granularity = "S5" // 5 seconds
	M1 Granularity = "M1" // 1 minute
	M5 Granularity = "M5" // 5 minutes
	H1 Granularity = "H1" // 1 hour
	D  Granularity = "D"  // 1 day
)

// PriceComponent represents the price component for candles
type PriceComponent string

const (
	MidPrice PriceComponent = "M" // Midpoint candles
	BidPrice PriceComponent = "B" // Bid candles
	AskPrice PriceComponent = "A" // Ask candles
)

// Config holds the connection settings for the API.
type Config struct {
	Token    string
	Practice bool
	BaseURL  string // overrides Practice when set
	Timeout  time.Duration
}

// Client represents an OANDA API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new OANDA API client
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = LiveURL
		if cfg.Practice {
			baseURL = PracticeURL
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CandlesRequest represents parameters for fetching historical candles
type CandlesRequest struct {
	Instrument  string         // Required, e.g. "USD_CAD"
	Price       PriceComponent // default MidPrice
	Granularity Granularity    // default S5
	Count       int            // max 5000
}

type candleData struct {
	O string `json:"o"`
	H string `json:"h"`
	L string `json:"l"`
	C string `json:"c"`
}

type apiCandle struct {
	Complete bool       `json:"complete"`
	Volume   int        `json:"volume"`
	Time     string     `json:"time"`
	Mid      candleData `json:"mid,omitempty"`
	Bid      candleData `json:"bid,omitempty"`
	Ask      candleData `json:"ask,omitempty"`
}

type candlesResponse struct {
	Instrument  string      `json:"instrument"`
	Granularity string      `json:"granularity"`
	Candles     []apiCandle `json:"candles"`
}

// GetCandles fetches complete candles for an instrument, oldest first.
func (c *Client) GetCandles(ctx context.Context, req CandlesRequest) ([]market.Candle, error) {
	if req.Instrument == "" {
		return nil, fmt.Errorf("instrument is required")
	}
	if req.Price == "" {
		req.Price = MidPrice
	}
	if req.Granularity == "" {
		req.Granularity = S5
	}
	if req.Count > 5000 {
		return nil, fmt.Errorf("count cannot exceed 5000")
	}

	params := url.Values{}
	params.Set("price", string(req.Price))
	params.Set("granularity", string(req.Granularity))
	if req.Count > 0 {
		params.Set("count", strconv.Itoa(req.Count))
	}

	apiURL := fmt.Sprintf("%s/v3/instruments/%s/candles?%s", c.baseURL, url.PathEscape(req.Instrument), params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp candlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candles := make([]market.Candle, 0, len(apiResp.Candles))
	for _, ac := range apiResp.Candles {
		if !ac.Complete {
			continue
		}
		cd, err := toCandle(ac, req.Price)
		if err != nil {
			return nil, err
		}
		candles = append(candles, cd)
	}
	return candles, nil
}

// LatestMid returns the close of the most recent complete M1 mid candle.
func (c *Client) LatestMid(ctx context.Context, instrument string) (float64, time.Time, error) {
	candles, err := c.GetCandles(ctx, CandlesRequest{
		Instrument:  instrument,
		Price:       MidPrice,
		Granularity: M1,
		Count:       2,
	})
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(candles) == 0 {
		return 0, time.Time{}, fmt.Errorf("%s: %w", instrument, ErrNoCandles)
	}
	last := candles[len(candles)-1]
	return last.Close, last.Time, nil
}

func toCandle(ac apiCandle, pc PriceComponent) (market.Candle, error) {
	t, err := time.Parse(time.RFC3339, ac.Time)
	if err != nil {
		return market.Candle{}, fmt.Errorf("parse time %s: %w", ac.Time, err)
	}

	var d candleData
	switch pc {
	case BidPrice:
		d = ac.Bid
	case AskPrice:
		d = ac.Ask
	default:
		d = ac.Mid
	}

	var ohlc [4]float64
	for i, s := range []string{d.O, d.H, d.L, d.C} {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("parse price %q: %w", s, err)
		}
		ohlc[i] = v
	}

	return market.Candle{
		Open:   ohlc[0],
		High:   ohlc[1],
		Low:    ohlc[2],
		Close:  ohlc[3],
		Time:   t,
		Volume: float64(ac.Volume),
	}, nil
}
