package ratesource

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rustyeddy/fxhedge/market"
)

// Cache decorates a Source with Redis. Snapshots are stored as JSON under
// "<namespace>:<instrument>", or "<namespace>:<variant>:<instrument>" once
// WithVariant is set, for ttl. Redis failures are logged and fall through
// to the inner source.
type Cache struct {
	inner     Source
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	variant   string
}

// NewCache wraps inner. A nil rdb disables caching; ttl <= 0 defaults to
// one minute and an empty namespace to "fxhedge:snapshot".
func NewCache(inner Source, rdb *redis.Client, ttl time.Duration, namespace string) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "fxhedge:snapshot"
	}
	return &Cache{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// WithVariant scopes keys to v, so snapshots built from different inputs
// never share an entry. See TableHash.
func (c *Cache) WithVariant(v string) *Cache {
	c.variant = v
	return c
}

// TableHash is a short stable digest of a rate table and the simulator
// jitter. Editing either yields a new cache variant.
func TableHash(rates market.InterestRates, jitter float64) string {
	codes := make([]string, 0, len(rates))
	for ccy := range rates {
		codes = append(codes, ccy)
	}
	sort.Strings(codes)

	d := xxhash.New()
	for _, ccy := range codes {
		_, _ = d.WriteString(ccy + "=" + strconv.FormatFloat(rates[ccy], 'g', -1, 64) + ";")
	}
	_, _ = d.WriteString("jitter=" + strconv.FormatFloat(jitter, 'g', -1, 64))
	return strconv.FormatUint(d.Sum64(), 16)
}

func (c *Cache) Name() string                 { return c.inner.Name() }
func (c *Cache) Pairs() []market.CurrencyPair { return c.inner.Pairs() }

func (c *Cache) Snapshot(ctx context.Context, pair market.CurrencyPair) (market.Snapshot, error) {
	if c.rdb == nil {
		return c.inner.Snapshot(ctx, pair)
	}

	key := c.key(pair)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var s market.Snapshot
		if err := json.Unmarshal(b, &s); err == nil {
			slog.Debug("snapshot cache hit", "pair", pair.String())
			return s, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && err != redis.Nil {
		slog.Warn("snapshot cache read failed", "pair", pair.String(), "error", err)
	}

	s, err := c.inner.Snapshot(ctx, pair)
	if err != nil {
		return market.Snapshot{}, err
	}

	if b, err := json.Marshal(s); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("snapshot cache write failed", "pair", pair.String(), "error", err)
		}
	}
	return s, nil
}

func (c *Cache) key(p market.CurrencyPair) string {
	if c.variant != "" {
		return c.namespace + ":" + c.variant + ":" + p.Instrument()
	}
	return c.namespace + ":" + p.Instrument()
}
