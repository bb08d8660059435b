package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/oanda"
	"github.com/rustyeddy/fxhedge/ratesource"
)

// newSource builds the configured rate source. The returned close func
// releases the Redis client, if any.
func newSource(cfg *config.Config) (ratesource.Source, func(), error) {
	rates := cfg.InterestRates()
	pairs, err := cfg.SourcePairs()
	if err != nil {
		return nil, nil, err
	}

	var src ratesource.Source
	switch cfg.Source.Kind {
	case "oanda":
		timeout, err := cfg.Source.ParseTimeout()
		if err != nil {
			return nil, nil, err
		}
		client := oanda.NewClient(oanda.Config{
			Token:    cfg.Source.Token,
			Practice: cfg.Source.Practice,
			Timeout:  timeout,
		})
		src = ratesource.NewOANDA(client, rates, pairs)
	case "simulated":
		seed := cfg.Source.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		src = ratesource.NewSimulator(ratesource.SimulatorConfig{
			Rates:  rates,
			Jitter: cfg.Source.Jitter,
			Seed:   seed,
		})
	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source.Kind)
	}

	if !cfg.Cache.Enabled {
		return src, func() {}, nil
	}

	ttl, err := cfg.Cache.ParseTTL()
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	slog.Debug("snapshot cache enabled", "addr", cfg.Cache.Addr, "ttl", ttl)
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			slog.Warn("close redis", "error", err)
		}
	}
	c := ratesource.NewCache(src, rdb, ttl, cfg.Cache.Namespace).
		WithVariant(ratesource.TableHash(rates, cfg.Source.Jitter))
	return c, closeFn, nil
}
