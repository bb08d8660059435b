package ratesource

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rustyeddy/fxhedge/market"
)

// DefaultSpots are indicative mid rates as of December 2024.
func DefaultSpots() map[market.CurrencyPair]float64 {
	return map[market.CurrencyPair]float64{
		market.NewPair("EUR", "USD"): 1.0545,
		market.NewPair("GBP", "USD"): 1.2675,
		market.NewPair("USD", "JPY"): 149.85,
		market.NewPair("USD", "CAD"): 1.4320,
		market.NewPair("AUD", "USD"): 0.6315,
		market.NewPair("USD", "CHF"): 0.8895,
	}
}

// Simulator quotes from a fixed spot table, optionally jittered by a
// uniform +/- Jitter fraction, for offline use.
type Simulator struct {
	spots  map[market.CurrencyPair]float64
	rates  market.InterestRates
	jitter float64
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

type SimulatorConfig struct {
	Spots  map[market.CurrencyPair]float64
	Rates  market.InterestRates
	Jitter float64 // e.g. 0.005 for +/-0.5%
	Seed   int64
}

func NewSimulator(cfg SimulatorConfig) *Simulator {
	spots := cfg.Spots
	if len(spots) == 0 {
		spots = DefaultSpots()
	}
	rates := cfg.Rates
	if len(rates) == 0 {
		rates = market.DefaultInterestRates()
	}
	return &Simulator{
		spots:  spots,
		rates:  rates,
		jitter: math.Abs(cfg.Jitter),
		now:    time.Now,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (s *Simulator) Name() string { return "simulated" }

// Pairs lists the majors first, in their display order, then any extra
// configured pairs sorted by name.
func (s *Simulator) Pairs() []market.CurrencyPair {
	return orderedPairs(s.spots)
}

func (s *Simulator) Snapshot(ctx context.Context, pair market.CurrencyPair) (market.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return market.Snapshot{}, fmt.Errorf("simulate %s: %v: %w", pair, err, market.ErrDataUnavailable)
	}
	spot, ok := s.spots[pair]
	if !ok {
		return market.Snapshot{}, fmt.Errorf("simulate %s: unknown pair: %w", pair, market.ErrDataUnavailable)
	}
	rd, rf, err := s.rates.ForPair(pair)
	if err != nil {
		return market.Snapshot{}, fmt.Errorf("simulate %s: %w", pair, err)
	}

	if s.jitter > 0 {
		s.mu.Lock()
		u := s.rng.Float64()*2 - 1
		s.mu.Unlock()
		spot = round(spot*(1+u*s.jitter), 4)
	}

	return market.Snapshot{
		Pair:         pair,
		Spot:         spot,
		DomesticRate: rd,
		ForeignRate:  rf,
		AsOf:         s.now(),
		Source:       s.Name(),
	}, nil
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
