package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxhedge/forward"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/market"
)

func usdcadCurve(t *testing.T) *forward.Curve {
	t.Helper()
	c, err := forward.BuildCurve(market.Snapshot{
		Pair:         market.NewPair("USD", "CAD"),
		Spot:         1.35,
		DomesticRate: 0.0375,
		ForeignRate:  0.045,
		AsOf:         time.Date(2024, 12, 2, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return c
}

func readAll(t *testing.T, b []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCurve(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCurve(&buf, usdcadCurve(t)))

	rows := readAll(t, buf.Bytes())
	require.Len(t, rows, 1+len(market.Tenors()))
	assert.Equal(t, CurveHeader, rows[0])
	assert.Equal(t, []string{"USD/CAD", "Spot", "0", "1.3500", "0.00", "2024-12-02"}, rows[1])
	assert.Equal(t, []string{"USD/CAD", "6M", "180", "1.3450", "-49.51", "2025-05-31"}, rows[6])
}

func TestWriteScenarios(t *testing.T) {
	t.Parallel()

	results, err := hedge.RunScenarios(usdcadCurve(t), market.SixMonths, 5_000_000, 0.75, hedge.ReferenceSpot, []float64{1.35, 1.40})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteScenarios(&buf, results))

	rows := readAll(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, ScenarioHeader, rows[0])
	assert.Equal(t, []string{"1.4000", "3.70", "-206066.63", "62500.00", "-143566.63", "1.3588"}, rows[2])
}

func TestWriteComparison(t *testing.T) {
	t.Parallel()

	results, err := hedge.CompareHedgeRatios(usdcadCurve(t), market.SixMonths, 5_000_000, 1.40, hedge.ReferenceSpot, hedge.DefaultRatios)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, results))

	rows := readAll(t, buf.Bytes())
	require.Len(t, rows, 1+len(hedge.DefaultRatios))
	assert.Equal(t, ComparisonHeader, rows[0])

	var ratios []string
	for _, r := range rows[1:] {
		ratios = append(ratios, r[0])
	}
	assert.Equal(t, []string{"0%", "25%", "50%", "75%", "100%"}, ratios)
	assert.Equal(t, []string{"75%", "3750000.00", "1250000.00", "-143566.63", "1.3588"}, rows[4])
	// Fully hedged: effective rate is the forward.
	assert.Equal(t, "1.3450", rows[5][4])
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "33%", Percent(0.33))
	assert.Equal(t, "100%", Percent(1))
}
