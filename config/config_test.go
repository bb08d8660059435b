package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD/CAD", cfg.Analysis.Pair)
	assert.Equal(t, 5_000_000.0, cfg.Analysis.Notional)
	assert.Equal(t, "6M", cfg.Analysis.Tenor)
	assert.Equal(t, 0.75, cfg.Analysis.HedgeRatio)
	assert.Equal(t, "neutral", cfg.Analysis.View)
	assert.Equal(t, "simulated", cfg.Source.Kind)
	assert.Equal(t, map[string]float64(market.DefaultInterestRates()), cfg.Rates)
	assert.Equal(t, hedge.DefaultShocks, cfg.Scenarios.Shocks)
	assert.Equal(t, hedge.DefaultRatios, cfg.Scenarios.Ratios)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"bad pair", func(c *Config) { c.Analysis.Pair = "USDX" }, "analysis.pair"},
		{"zero notional", func(c *Config) { c.Analysis.Notional = 0 }, "analysis.notional must be positive"},
		{"unknown tenor", func(c *Config) { c.Analysis.Tenor = "5Y" }, "analysis.tenor"},
		{"ratio above one", func(c *Config) { c.Analysis.HedgeRatio = 1.5 }, "analysis.hedge_ratio must be between 0 and 1"},
		{"bad view", func(c *Config) { c.Analysis.View = "sideways" }, "analysis.view"},
		{"bad reference", func(c *Config) { c.Analysis.Reference = "" }, "analysis.reference"},
		{"unknown source", func(c *Config) { c.Source.Kind = "yahoo" }, "source.kind must be 'simulated' or 'oanda'"},
		{"oanda without token", func(c *Config) { c.Source.Kind = "oanda" }, "source.token is required"},
		{"bad jitter", func(c *Config) { c.Source.Jitter = -0.1 }, "source.jitter"},
		{"bad timeout", func(c *Config) { c.Source.Timeout = "soon" }, "source.timeout"},
		{"bad source pair", func(c *Config) { c.Source.Pairs = []string{"EURUSD", "nope"} }, "source.pairs"},
		{"bad rate code", func(c *Config) { c.Rates["EURO"] = 0.01 }, "is not a currency code"},
		{"bad rate value", func(c *Config) { c.Rates["USD"] = -1 }, "rates.USD"},
		{"bad shock", func(c *Config) { c.Scenarios.Shocks = []float64{-1} }, "scenarios.shocks"},
		{"bad ratio", func(c *Config) { c.Scenarios.Ratios = []float64{0, 2} }, "scenarios.ratios"},
		{"bad policy", func(c *Config) { c.Recommend.Bearish = 1.2 }, "recommend"},
		{"cache without addr", func(c *Config) { c.Cache.Enabled = true; c.Cache.Addr = "" }, "cache.addr"},
		{"bad ttl", func(c *Config) { c.Cache.TTL = "forever" }, "cache.ttl"},
		{"no output dir", func(c *Config) { c.Output.Dir = "" }, "output.dir is required"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := Default()
	cfg.Analysis.Pair = "EUR/USD"
	cfg.Analysis.Tenor = "3M"
	cfg.Cache.Enabled = true

	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveAndLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	cfg := Default()
	cfg.Analysis.View = "bearish"

	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveAndLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Analysis.Notional = 1_250_000
	cfg.Recommend.Bullish = 0.25

	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "fx.toml")

	data := `
log_level = "debug"

[analysis]
pair = "GBP/USD"
tenor = "1Y"

[rates]
GBP = 0.05
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GBP/USD", cfg.Analysis.Pair)
	assert.Equal(t, "1Y", cfg.Analysis.Tenor)
	assert.Equal(t, 5_000_000.0, cfg.Analysis.Notional)
	assert.Equal(t, 0.05, cfg.Rates["GBP"])
	assert.Equal(t, 0.045, cfg.Rates["USD"])
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadLowercaseRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rates:\n  usd: 0.01\n  cad: 0.02\n"), 0644))

	// Map order must not decide which USD rate wins.
	for i := 0; i < 50; i++ {
		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 0.01, cfg.Rates["USD"])
		assert.Equal(t, 0.02, cfg.Rates["CAD"])
		assert.NotContains(t, cfg.Rates, "usd")
		assert.Equal(t, 0.03, cfg.Rates["EUR"])
		assert.Equal(t, 0.01, cfg.InterestRates()["USD"])
	}
}

func TestLoadDuplicateRateCodes(t *testing.T) {
	tmpDir := t.TempDir()

	yml := filepath.Join(tmpDir, "dup.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("rates:\n  usd: 0.01\n  USD: 0.02\n"), 0644))
	_, err := LoadFromFile(yml)
	assert.ErrorContains(t, err, `rates: "USD" and "usd" name the same currency`)

	tml := filepath.Join(tmpDir, "dup.toml")
	require.NoError(t, os.WriteFile(tml, []byte("[rates]\nEur = 0.01\nEUR = 0.02\n"), 0644))
	_, err = LoadFromFile(tml)
	assert.ErrorContains(t, err, "name the same currency")

	cfg := Default()
	cfg.Rates["usd"] = 0.01
	assert.ErrorContains(t, cfg.Validate(), "name the same currency")
}

func TestLoadFromFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(tmpDir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	bad := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("analysis: [unclosed"), 0644))
	_, err = LoadFromFile(bad)
	assert.ErrorContains(t, err, "parse config")

	badTOML := filepath.Join(tmpDir, "bad.toml")
	require.NoError(t, os.WriteFile(badTOML, []byte("analysis = = 1"), 0644))
	_, err = LoadFromFile(badTOML)
	assert.ErrorContains(t, err, "parse config (toml)")

	invalid := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("analysis:\n  hedge_ratio: 3\n"), 0644))
	_, err = LoadFromFile(invalid)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FXHEDGE_PAIR", "AUD/USD")
	t.Setenv("FXHEDGE_NOTIONAL", "2500000")
	t.Setenv("FXHEDGE_HEDGE_RATIO", "0.5")
	t.Setenv("FXHEDGE_SOURCE", "oanda")
	t.Setenv("OANDA_TOKEN", "secret")
	t.Setenv("FXHEDGE_CACHE_ENABLED", "true")
	t.Setenv("FXHEDGE_REDIS_DB", "3")
	t.Setenv("FXHEDGE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "AUD/USD", cfg.Analysis.Pair)
	assert.Equal(t, 2_500_000.0, cfg.Analysis.Notional)
	assert.Equal(t, 0.5, cfg.Analysis.HedgeRatio)
	assert.Equal(t, "oanda", cfg.Source.Kind)
	assert.Equal(t, "secret", cfg.Source.Token)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 3, cfg.Cache.DB)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadEnvCompletesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  kind: oanda\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err, "token is missing from the file")

	t.Setenv("FXHEDGE_OANDA_TOKEN", "from-env")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Source.Token)
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv("FXHEDGE_TENOR", "18M")

	_, err := Load("")
	assert.ErrorContains(t, err, "analysis.tenor")
}

func TestParams(t *testing.T) {
	cfg := Default()
	cfg.Analysis.Reference = "forward"

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, market.NewPair("USD", "CAD"), p.Pair)
	assert.Equal(t, market.SixMonths, p.Tenor)
	assert.Equal(t, market.Neutral, p.View)
	assert.Equal(t, hedge.ReferenceForward, p.Reference)
	assert.Equal(t, 0.75, p.HedgeRatio)
	assert.Equal(t, cfg.Policy(), p.Policy)

	cfg.Analysis.View = "?"
	_, err = cfg.Params()
	assert.ErrorIs(t, err, market.ErrInvalidInput)
}

func TestHelpers(t *testing.T) {
	cfg := Default()
	cfg.Rates = map[string]float64{"usd": 0.04}
	assert.Equal(t, market.InterestRates{"USD": 0.04}, cfg.InterestRates())

	pairs, err := cfg.SourcePairs()
	require.NoError(t, err)
	assert.Nil(t, pairs)

	cfg.Source.Pairs = []string{"EUR_USD", "usdjpy"}
	pairs, err = cfg.SourcePairs()
	require.NoError(t, err)
	assert.Equal(t, []market.CurrencyPair{market.NewPair("EUR", "USD"), market.NewPair("USD", "JPY")}, pairs)

	ttl, err := cfg.Cache.ParseTTL()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	timeout, err := cfg.Source.ParseTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}
