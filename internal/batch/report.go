package batch

import (
	"fmt"
	"io"
	"strconv"
)

// Report collects the results of one run.
type Report struct {
	Name    string   `json:"name"`
	RunID   string   `json:"run_id"`
	Results []Result `json:"results"`
	Failed  int      `json:"failed"`
}

// WriteText writes a human-readable report. Magnitudes are printed to six
// significant digits and iteration counts are omitted, so the text is stable
// across platforms.
func (r *Report) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("batch %s (run %s)\n", r.Name, r.RunID)
	ew.printf("%d cases, %d failed\n", len(r.Results), r.Failed)

	for _, res := range r.Results {
		ew.printf("\n")
		if !res.OK() {
			ew.printf("FAIL %s [%s]\n", res.Name, res.Calculation)
			ew.printf("  %s\n", res.Error)
			continue
		}
		ew.printf("ok   %s [%s]", res.Name, res.Calculation)
		if res.Method != "" {
			ew.printf(" %s", res.Method)
		}
		if res.Membrane != "" {
			ew.printf(" membrane=%s", res.Membrane)
		}
		ew.printf("\n")
		for _, k := range res.OutputNames() {
			q := res.Outputs[k]
			ew.printf("  %-16s %s %s\n", k, FormatMagnitude(q.Magnitude), q.Units)
		}
	}
	return ew.err
}

// FormatMagnitude formats v to six significant digits.
func FormatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
