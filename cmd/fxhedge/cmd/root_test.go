package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests drive the shared rootCmd and so run sequentially. Flag values
// persist between calls.

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fxhedge version "+version)
}

func TestAnalyze_DefaultRun(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "analyze", "--out", dir, "--report", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Currency Pair:     USD/CAD")
	assert.Contains(t, out, "Notional Exposure: 5,000,000")
	assert.Contains(t, out, "Forward Curve for USD/CAD:")
	assert.Contains(t, out, "Recommended Strategy: 75% Hedge Ratio")
	assert.Contains(t, out, "Enter FX forward to sell 3,750,000 USD vs CAD")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 4, names)
	for _, prefix := range []string{"forward_curve_USDCAD_", "hedge_comparison_USDCAD_", "hedge_report_USDCAD_", "scenario_analysis_USDCAD_"} {
		found := false
		for _, n := range names {
			found = found || strings.HasPrefix(n, prefix)
		}
		assert.True(t, found, prefix)
	}
}

func TestAnalyze_Flags(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "analyze", "--out", dir, "--no-export", "--report=false",
		"--pair", "EUR/USD", "--notional", "2000000", "--tenor", "1Y", "--ratio", "0.5",
		"--view", "bearish", "--future-spot", "1.10", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Currency Pair:     EUR/USD")
	assert.Contains(t, out, "Comparison at Future Spot = 1.1000")
	assert.Contains(t, out, "Recommended Strategy: 100% Hedge Ratio")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnalyze_ReportOnlyFreshDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	_, err := execute(t, "analyze", "--out", dir, "--no-export", "--report", "--log-level", "error")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "hedge_report_"), entries[0].Name())
}

func TestAnalyze_InvalidRatio(t *testing.T) {
	_, err := execute(t, "analyze", "--no-export", "--ratio", "1.5", "--log-level", "error")
	assert.Error(t, err)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fxhedge.toml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "USD/CAD 5,000,000")
}

func TestCurves(t *testing.T) {
	out, err := execute(t, "curves", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "FORWARD CURVES (simulated)")
	for _, pair := range []string{"EUR/USD", "GBP/USD", "USD/JPY", "USD/CAD", "AUD/USD", "USD/CHF"} {
		assert.Contains(t, out, "Forward Curve for "+pair+":")
	}
}
