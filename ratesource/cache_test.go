package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxhedge/market"
)

type stubSource struct {
	snap  market.Snapshot
	err   error
	calls int
}

func (s *stubSource) Name() string                 { return "stub" }
func (s *stubSource) Pairs() []market.CurrencyPair { return []market.CurrencyPair{s.snap.Pair} }

func (s *stubSource) Snapshot(_ context.Context, _ market.CurrencyPair) (market.Snapshot, error) {
	s.calls++
	return s.snap, s.err
}

func testSnapshot() market.Snapshot {
	return market.Snapshot{
		Pair:         market.NewPair("USD", "CAD"),
		Spot:         1.35,
		DomesticRate: 0.0375,
		ForeignRate:  0.045,
		AsOf:         time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC),
		Source:       "stub",
	}
}

func TestNewCache_Defaults(t *testing.T) {
	t.Parallel()

	c := NewCache(&stubSource{}, nil, 0, "")
	assert.Equal(t, time.Minute, c.ttl)
	assert.Equal(t, "fxhedge:snapshot", c.namespace)

	c = NewCache(&stubSource{}, nil, 5*time.Minute, "fx")
	assert.Equal(t, 5*time.Minute, c.ttl)
	assert.Equal(t, "fx:USD_CAD", c.key(market.NewPair("USD", "CAD")))
}

func TestCache_NilClientBypasses(t *testing.T) {
	t.Parallel()

	inner := &stubSource{snap: testSnapshot()}
	c := NewCache(inner, nil, time.Minute, "fx")

	for i := 0; i < 2; i++ {
		s, err := c.Snapshot(context.Background(), inner.snap.Pair)
		require.NoError(t, err)
		assert.Equal(t, 1.35, s.Spot)
	}
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, "stub", c.Name())
}

func TestCache_Hit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	want := testSnapshot()
	b, err := json.Marshal(want)
	require.NoError(t, err)
	mock.ExpectGet("fx:USD_CAD").SetVal(string(b))

	inner := &stubSource{err: errors.New("must not be called")}
	got, err := NewCache(inner, rdb, time.Minute, "fx").Snapshot(context.Background(), want.Pair)
	require.NoError(t, err)

	assert.Equal(t, 0, inner.calls)
	assert.Equal(t, want.Pair, got.Pair)
	assert.Equal(t, want.Spot, got.Spot)
	assert.True(t, want.AsOf.Equal(got.AsOf))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_MissStores(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &stubSource{snap: testSnapshot()}
	b, err := json.Marshal(inner.snap)
	require.NoError(t, err)

	mock.ExpectGet("fx:USD_CAD").RedisNil()
	mock.ExpectSet("fx:USD_CAD", b, 2*time.Minute).SetVal("OK")

	got, err := NewCache(inner, rdb, 2*time.Minute, "fx").Snapshot(context.Background(), inner.snap.Pair)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, inner.snap.Spot, got.Spot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_CorruptEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &stubSource{snap: testSnapshot()}
	b, err := json.Marshal(inner.snap)
	require.NoError(t, err)

	mock.ExpectGet("fx:USD_CAD").SetVal("{not json")
	mock.ExpectDel("fx:USD_CAD").SetVal(1)
	mock.ExpectSet("fx:USD_CAD", b, time.Minute).SetVal("OK")

	_, err = NewCache(inner, rdb, time.Minute, "fx").Snapshot(context.Background(), inner.snap.Pair)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_RedisDownFallsThrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &stubSource{snap: testSnapshot()}
	b, err := json.Marshal(inner.snap)
	require.NoError(t, err)

	mock.ExpectGet("fx:USD_CAD").SetErr(errors.New("connection refused"))
	mock.ExpectSet("fx:USD_CAD", b, time.Minute).SetErr(errors.New("connection refused"))

	got, err := NewCache(inner, rdb, time.Minute, "fx").Snapshot(context.Background(), inner.snap.Pair)
	require.NoError(t, err)
	assert.Equal(t, inner.snap.Spot, got.Spot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_InnerErrorNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("fx:USD_CAD").RedisNil()

	inner := &stubSource{snap: testSnapshot(), err: market.ErrDataUnavailable}
	_, err := NewCache(inner, rdb, time.Minute, "fx").Snapshot(context.Background(), inner.snap.Pair)
	assert.ErrorIs(t, err, market.ErrDataUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableHash(t *testing.T) {
	t.Parallel()

	rates := market.DefaultInterestRates()
	h := TableHash(rates, 0)
	assert.NotEmpty(t, h)

	for i := 0; i < 20; i++ {
		assert.Equal(t, h, TableHash(market.DefaultInterestRates(), 0))
	}

	changed := market.DefaultInterestRates()
	changed["USD"] = 0.01
	assert.NotEqual(t, h, TableHash(changed, 0))
	assert.NotEqual(t, h, TableHash(rates, 0.001))
}

func TestCache_VariantKey(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &stubSource{snap: testSnapshot()}
	b, err := json.Marshal(inner.snap)
	require.NoError(t, err)

	v := TableHash(market.DefaultInterestRates(), 0)
	key := "fx:" + v + ":USD_CAD"
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, b, time.Minute).SetVal("OK")

	c := NewCache(inner, rdb, time.Minute, "fx").WithVariant(v)
	_, err = c.Snapshot(context.Background(), inner.snap.Pair)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
