package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load builds the effective configuration: defaults, then the file at path
// (if any), then a .env file in the working directory, then FXHEDGE_*
// environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = decodeFile(path); err != nil {
			return nil, err
		}
	}

	// A missing .env is not an error.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Analysis.Pair, "FXHEDGE_PAIR")
	setFloat64(&cfg.Analysis.Notional, "FXHEDGE_NOTIONAL")
	setStr(&cfg.Analysis.Tenor, "FXHEDGE_TENOR")
	setFloat64(&cfg.Analysis.HedgeRatio, "FXHEDGE_HEDGE_RATIO")
	setStr(&cfg.Analysis.View, "FXHEDGE_VIEW")
	setStr(&cfg.Analysis.Reference, "FXHEDGE_REFERENCE")

	setStr(&cfg.Source.Kind, "FXHEDGE_SOURCE")
	setStr(&cfg.Source.Token, "OANDA_TOKEN")
	setStr(&cfg.Source.Token, "FXHEDGE_OANDA_TOKEN")
	setBool(&cfg.Source.Practice, "FXHEDGE_OANDA_PRACTICE")

	setBool(&cfg.Cache.Enabled, "FXHEDGE_CACHE_ENABLED")
	setStr(&cfg.Cache.Addr, "FXHEDGE_REDIS_ADDR")
	setStr(&cfg.Cache.Password, "FXHEDGE_REDIS_PASSWORD")
	setInt(&cfg.Cache.DB, "FXHEDGE_REDIS_DB")

	setStr(&cfg.Output.Dir, "FXHEDGE_OUTPUT_DIR")
	setStr(&cfg.LogLevel, "FXHEDGE_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
