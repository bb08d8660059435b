// Package config loads fxhedge settings from YAML, JSON or TOML files with
// FXHEDGE_* environment overrides.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the complete analyzer configuration
type Config struct {
	Analysis  AnalysisConfig     `json:"analysis" yaml:"analysis" toml:"analysis"`
	Source    SourceConfig       `json:"source" yaml:"source" toml:"source"`
	Rates     map[string]float64 `json:"rates" yaml:"rates" toml:"rates"`
	Scenarios ScenarioConfig     `json:"scenarios" yaml:"scenarios" toml:"scenarios"`
	Recommend RecommendConfig    `json:"recommend" yaml:"recommend" toml:"recommend"`
	Cache     CacheConfig        `json:"cache" yaml:"cache" toml:"cache"`
	Output    OutputConfig       `json:"output" yaml:"output" toml:"output"`
	LogLevel  string             `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// AnalysisConfig holds the default run parameters.
type AnalysisConfig struct {
	Pair       string  `json:"pair" yaml:"pair" toml:"pair"`
	Notional   float64 `json:"notional" yaml:"notional" toml:"notional"`
	Tenor      string  `json:"tenor" yaml:"tenor" toml:"tenor"`
	HedgeRatio float64 `json:"hedge_ratio" yaml:"hedge_ratio" toml:"hedge_ratio"`
	View       string  `json:"view" yaml:"view" toml:"view"`
	Reference  string  `json:"reference" yaml:"reference" toml:"reference"` // "spot" or "forward"
}

// SourceConfig selects and tunes the rate source.
type SourceConfig struct {
	Kind     string   `json:"kind" yaml:"kind" toml:"kind"` // "simulated" or "oanda"
	Jitter   float64  `json:"jitter" yaml:"jitter" toml:"jitter"`
	Seed     int64    `json:"seed" yaml:"seed" toml:"seed"`
	Token    string   `json:"token,omitempty" yaml:"token,omitempty" toml:"token,omitempty"`
	Practice bool     `json:"practice" yaml:"practice" toml:"practice"`
	Timeout  string   `json:"timeout" yaml:"timeout" toml:"timeout"` // e.g. "30s"
	Pairs    []string `json:"pairs,omitempty" yaml:"pairs,omitempty" toml:"pairs,omitempty"`
}

// ScenarioConfig sets the spot ladder and the hedge ratios compared.
type ScenarioConfig struct {
	Shocks []float64 `json:"shocks" yaml:"shocks" toml:"shocks"`
	Ratios []float64 `json:"ratios" yaml:"ratios" toml:"ratios"`
}

// RecommendConfig maps each market view to a hedge ratio.
type RecommendConfig struct {
	Bullish float64 `json:"bullish" yaml:"bullish" toml:"bullish"`
	Neutral float64 `json:"neutral" yaml:"neutral" toml:"neutral"`
	Bearish float64 `json:"bearish" yaml:"bearish" toml:"bearish"`
}

// CacheConfig contains the optional Redis snapshot cache. Keys include a
// hash of the rate table and jitter, so editing either bypasses snapshots
// cached before the change. Spot moves are only picked up after TTL.
type CacheConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty" toml:"password,omitempty"`
	DB        int    `json:"db" yaml:"db" toml:"db"`
	TTL       string `json:"ttl" yaml:"ttl" toml:"ttl"`
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
}

// OutputConfig controls CSV export and the Org report.
type OutputConfig struct {
	Dir    string `json:"dir" yaml:"dir" toml:"dir"`
	Export bool   `json:"export" yaml:"export" toml:"export"`
	Report bool   `json:"report" yaml:"report" toml:"report"`
}

func (s SourceConfig) ParseTimeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Timeout)
}

func (c CacheConfig) ParseTTL() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.TTL)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Pair:       "USD/CAD",
			Notional:   5_000_000,
			Tenor:      "6M",
			HedgeRatio: 0.75,
			View:       "neutral",
			Reference:  "spot",
		},
		Source: SourceConfig{
			Kind:     "simulated",
			Practice: true,
			Timeout:  "30s",
		},
		Rates: map[string]float64{
			"USD": 0.0450,
			"EUR": 0.0300,
			"GBP": 0.0475,
			"JPY": 0.0010,
			"CAD": 0.0375,
			"AUD": 0.0400,
			"CHF": 0.0125,
		},
		Scenarios: ScenarioConfig{
			Shocks: []float64{-0.10, -0.05, 0, 0.05, 0.10},
			Ratios: []float64{0, 0.25, 0.50, 0.75, 1.0},
		},
		Recommend: RecommendConfig{
			Bullish: 0.50,
			Neutral: 0.75,
			Bearish: 1.00,
		},
		Cache: CacheConfig{
			Addr:      "localhost:6379",
			TTL:       "1m",
			Namespace: "fxhedge:snapshot",
		},
		Output: OutputConfig{
			Dir:    "outputs",
			Export: true,
		},
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a file on top of Default. Files
// ending in .toml are decoded as TOML; anything else is tried as YAML, then
// JSON.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func decodeFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// The decoders merge into existing maps, so rates are decoded into an
	// empty table and the defaults filled in afterwards.
	cfg := Default()
	defaults := cfg.Rates
	cfg.Rates = nil

	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config (toml): %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	rates, err := normalizeRates(cfg.Rates)
	if err != nil {
		return nil, err
	}
	for ccy, r := range defaults {
		if _, ok := rates[ccy]; !ok {
			rates[ccy] = r
		}
	}
	cfg.Rates = rates
	return cfg, nil
}

// normalizeRates upper-cases currency codes. Two keys naming the same
// currency in different case are an error.
func normalizeRates(in map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(in))
	seen := make(map[string]string, len(in))
	for key, r := range in {
		ccy := strings.ToUpper(strings.TrimSpace(key))
		if prev, ok := seen[ccy]; ok {
			if prev > key {
				prev, key = key, prev
			}
			return nil, fmt.Errorf("rates: %q and %q name the same currency", prev, key)
		}
		seen[ccy] = key
		out[ccy] = r
	}
	return out, nil
}

// SaveToFile saves configuration to a file (YAML, TOML or JSON based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch {
	case isYAML(path):
		data, err = yaml.Marshal(c)
	case isTOML(path):
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isTOML(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".toml"
}
