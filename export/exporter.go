package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/fxhedge/analysis"
)

// Files are the paths written for one run.
type Files struct {
	Curve      string
	Scenarios  string
	Comparison string
}

func (f Files) All() []string {
	return []string{f.Curve, f.Scenarios, f.Comparison}
}

// Exporter writes the CSV files of a run into Dir.
type Exporter struct {
	Dir string
}

func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = "outputs"
	}
	return &Exporter{Dir: dir}
}

// Paths returns the file names a run exports to, e.g.
// outputs/forward_curve_USDCAD_<run id>.csv.
func (e *Exporter) Paths(run *analysis.Run) Files {
	tag := strings.ReplaceAll(run.Snapshot.Pair.String(), "/", "") + "_" + run.ID
	return Files{
		Curve:      filepath.Join(e.Dir, "forward_curve_"+tag+".csv"),
		Scenarios:  filepath.Join(e.Dir, "scenario_analysis_"+tag+".csv"),
		Comparison: filepath.Join(e.Dir, "hedge_comparison_"+tag+".csv"),
	}
}

// Export writes all three files. If any write fails, files already written
// for the run are removed.
func (e *Exporter) Export(run *analysis.Run) (Files, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("create output dir: %w", err)
	}

	files := e.Paths(run)
	jobs := []struct {
		path  string
		write func(io.Writer) error
	}{
		{files.Curve, func(w io.Writer) error { return WriteCurve(w, run.Curve) }},
		{files.Scenarios, func(w io.Writer) error { return WriteScenarios(w, run.Scenarios) }},
		{files.Comparison, func(w io.Writer) error { return WriteComparison(w, run.Comparison) }},
	}

	var written []string
	for _, j := range jobs {
		if err := writeFile(j.path, j.write); err != nil {
			for _, p := range written {
				_ = os.Remove(p)
			}
			return Files{}, err
		}
		written = append(written, j.path)
		slog.Debug("exported", "path", j.path)
	}
	return files, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
