package dump

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/cpmech/gosl/chk"
)

// BenchResult is one named timing's summary statistics, matching
// spec.md §6.5's CSV benchmark columns: name, duration_ms, iterations,
// mean, variance, min, max. No benchmarking library appears anywhere in
// the example pack (the teacher and its siblings time themselves with
// raw time.Now()/time.Since() calls in ana/ and tests/), so this writer
// is encoding/csv directly over a caller-supplied slice of results.
type BenchResult struct {
	Name       string
	DurationMs float64
	Iterations int
	Mean       float64
	Variance   float64
	Min        float64
	Max        float64
}

// WriteBenchCSV writes results to path as a CSV benchmark file (spec.md
// §6.5): a header row followed by one row per BenchResult.
func WriteBenchCSV(path string, results []BenchResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("dump: cannot create %q: %v", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "duration_ms", "iterations", "mean", "variance", "min", "max"}); err != nil {
		return chk.Err("dump: cannot write CSV header: %v", err)
	}
	for _, r := range results {
		row := []string{
			r.Name,
			fmt.Sprintf("%.6f", r.DurationMs),
			fmt.Sprintf("%d", r.Iterations),
			fmt.Sprintf("%.9g", r.Mean),
			fmt.Sprintf("%.9g", r.Variance),
			fmt.Sprintf("%.9g", r.Min),
			fmt.Sprintf("%.9g", r.Max),
		}
		if err := w.Write(row); err != nil {
			return chk.Err("dump: cannot write CSV row for %q: %v", r.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return chk.Err("dump: cannot flush CSV: %v", err)
	}
	return nil
}
