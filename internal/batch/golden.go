package batch

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares the text rendering of report against
// testdata/golden/<name>.golden. Run the test with -update to rewrite the
// fixture.
//
// Parameters:
//   - t: testing.T instance for test assertions
//   - name: golden file name (without extension)
//   - report: the report from a run with a fixed run ID
func AssertGolden(t *testing.T, name string, report *Report) error {
	t.Helper()

	var buf bytes.Buffer
	if err := report.WriteText(&buf); err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, buf.Bytes())

	return nil
}
