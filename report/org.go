// Package report renders an analysis run as an Org-mode document.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/rustyeddy/fxhedge/analysis"
	"github.com/rustyeddy/fxhedge/export"
	"github.com/rustyeddy/fxhedge/pkg/id"
)

// Report is the template input: the run plus any exported files to link.
type Report struct {
	*analysis.Run
	Files []string
}

var orgFuncs = template.FuncMap{
	"pct":  export.Percent,
	"date": func(t time.Time) string { return t.Format("2006-01-02") },
	"stamp": func(t time.Time) string {
		if t.IsZero() {
			t = time.Now()
		}
		return t.Format("2006-01-02 Mon 15:04")
	},
	// runtime reads the creation time back out of a run ID.
	"runtime": func(runID string) string {
		t, err := id.Time(runID)
		if err != nil {
			return "unknown"
		}
		return t.Format("2006-01-02 15:04:05.000 MST")
	},
}

var orgTemplate = template.Must(template.New("analysis").Funcs(orgFuncs).Parse(OrgTemplate))

// Render writes the Org document for r to w.
func Render(w io.Writer, r Report) error {
	if r.Run == nil || r.Curve == nil {
		return fmt.Errorf("render report: empty run")
	}
	return orgTemplate.Execute(w, r)
}

// WriteFile renders r into path, creating its directory if needed.
// Nothing is written if rendering fails.
func WriteFile(path string, r Report) error {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

const OrgTemplate = `* FX HEDGE: {{.Snapshot.Pair}} {{.Params.Tenor}} {{pct .Params.HedgeRatio}}
:PROPERTIES:
:RUN_ID:      {{.ID}}
:RUN_TIME:    {{runtime .ID}}
:PAIR:        {{.Snapshot.Pair}}
:SOURCE:      {{.Snapshot.Source}}
:AS_OF:       [{{stamp .Snapshot.AsOf}}]
:SPOT:        {{printf "%.4f" .Snapshot.Spot}}
:RATE_DOM:    {{printf "%.4f" .Snapshot.DomesticRate}}
:RATE_FOR:    {{printf "%.4f" .Snapshot.ForeignRate}}
:NOTIONAL:    {{printf "%.2f" .Params.Notional}}
:TENOR:       {{.Params.Tenor}}
:HEDGE_RATIO: {{pct .Params.HedgeRatio}}
:VIEW:        {{.Params.View}}
:REFERENCE:   {{.Params.Reference}}
:CREATED:     [{{stamp .StartedAt}}]
:END:

** Hedge Cost
- Hedged amount:     *{{printf "%.2f" .Cost.HedgedAmount}} {{.Snapshot.Pair.Base}}*
- Unhedged amount:   *{{printf "%.2f" .Cost.UnhedgedAmount}} {{.Snapshot.Pair.Base}}*
- Forward rate:      *{{printf "%.4f" .Cost.ForwardRate}}*
- Forward points:    *{{printf "%.2f" .Cost.ForwardPoints}}*
- Premium/discount:  *{{printf "%.4f" .Cost.PremiumDiscountPct}}%*
- Settlement:        <{{date .Cost.SettlementDate}}>

** Forward Curve
| Tenor | Days | Forward | Points | Settlement |
|-------+------+---------+--------+------------|
{{- range .Curve.Points }}
| {{.Tenor}} | {{.Tenor.Days}} | {{printf "%.4f" .ForwardRate}} | {{printf "%.2f" .ForwardPoints}} | {{date .SettlementDate}} |
{{- end }}

** Scenarios ({{pct .Params.HedgeRatio}} hedged)
| Future Spot | Change % | Hedged P&L | Unhedged P&L | Total P&L | Effective |
|-------------+----------+------------+--------------+-----------+-----------|
{{- range .Scenarios }}
| {{printf "%.4f" .FutureSpot}} | {{printf "%.2f" .SpotChangePct}} | {{printf "%.2f" .HedgedPnL}} | {{printf "%.2f" .UnhedgedPnL}} | {{printf "%.2f" .TotalPnL}} | {{printf "%.4f" .EffectiveRate}} |
{{- end }}

** Hedge Ratio Comparison at {{printf "%.4f" .ComparisonSpot}}
| Ratio | Hedged | Unhedged | Total P&L | Effective |
|-------+--------+----------+-----------+-----------|
{{- range .Comparison }}
| {{pct .HedgeRatio}} | {{printf "%.2f" .HedgedNotional}} | {{printf "%.2f" .UnhedgedNotional}} | {{printf "%.2f" .TotalPnL}} | {{printf "%.4f" .EffectiveRate}} |
{{- end }}

** Recommendation: {{pct .Recommendation.SuggestedHedgeRatio}} hedge ({{.Recommendation.View.Title}})
{{.Recommendation.Rationale}}

- Forward premium/discount: {{printf "%.4f" .Recommendation.PremiumDiscountPct}}%

- [ ] {{.Recommendation.Action}}
{{- if .Files }}

** Exports
{{- range .Files }}
- [[file:{{.}}]]
{{- end }}
{{- end }}
`
