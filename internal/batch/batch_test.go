package batch

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/memtk/internal/donnan"
	"github.com/roach88/memtk/internal/library"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	batchFile  = filepath.Join("..", "..", "testdata", "batch", "cr61.yaml")
	libraryDir = filepath.Join("..", "..", "testdata", "membranes")
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, errs := library.Load(libraryDir, library.LoadModeCollectAll)
	require.Empty(t, errs)
	return lib
}

func newRunner(t *testing.T) *Runner {
	return &Runner{
		Workers: 3,
		Library: loadLibrary(t),
		Logger:  quietLogger(),
		IDs:     NewFixedGenerator("run-0001"),
	}
}

func TestRunGolden(t *testing.T) {
	f, err := LoadFile(batchFile)
	require.NoError(t, err)

	report, err := newRunner(t).Run(context.Background(), f)
	require.NoError(t, err)

	require.NoError(t, AssertGolden(t, "cr61", report))
}

func TestRunResults(t *testing.T) {
	f, err := LoadFile(batchFile)
	require.NoError(t, err)

	report, err := newRunner(t).Run(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, "cr61-demo", report.Name)
	assert.Equal(t, "run-0001", report.RunID)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, len(f.Cases))

	// Results keep file order regardless of worker scheduling.
	for i, c := range f.Cases {
		assert.Equal(t, c.Name, report.Results[i].Name)
	}

	nacl := report.Results[0]
	require.True(t, nacl.OK())
	assert.Equal(t, donnan.MethodClosedForm, nacl.Method)
	assert.InDelta(t, 0.06155281, nacl.Outputs["co_ion"].Magnitude, 1e-7)
	assert.Equal(t, "mol/L", nacl.Outputs["co_ion"].Units)

	manning := report.Results[2]
	require.True(t, manning.OK(), manning.Error)
	assert.InDelta(t, 0.266428, manning.Outputs["co_ion"].Magnitude, 1e-6)
	assert.InDelta(t, 0.519533, manning.Outputs["mean_activity"].Magnitude, 1e-6)

	bad := report.Results[5]
	assert.False(t, bad.OK())
	assert.Equal(t, string(donnan.ErrCodeInvalidStoichiometry), bad.ErrorCode)
	assert.Nil(t, bad.Outputs)
}

func TestRunGeneratesRunID(t *testing.T) {
	f := &File{Name: "one", Cases: []Case{{
		Name:        "nacl",
		Calculation: CalcDonnan,
		Inputs:      map[string]string{"c_bulk": "0.1 M", "c_fix": "1 M"},
	}}}

	r := &Runner{Logger: quietLogger()}
	report, err := r.Run(context.Background(), f)
	require.NoError(t, err)
	assert.Len(t, report.RunID, 36)
	assert.Equal(t, 0, report.Failed)

	f.RunID = "pinned"
	report, err = r.Run(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "pinned", report.RunID)
}

func TestRunCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		c    Case
		code string
		msg  string
	}{
		{
			name: "missing input",
			c:    Case{Calculation: CalcDonnan, Inputs: map[string]string{"c_bulk": "0.1 M"}},
			code: CodeMissingInput,
			msg:  `missing input "c_fix"`,
		},
		{
			name: "wrong dimension",
			c:    Case{Calculation: CalcDonnan, Inputs: map[string]string{"c_bulk": "58 g/L", "c_fix": "1 M"}},
			code: CodeIncompatibleUnits,
			msg:  "c_bulk",
		},
		{
			name: "unparseable quantity",
			c:    Case{Calculation: CalcNernst, Inputs: map[string]string{"c_high": "0.5 M", "c_low": "1 frobs"}},
			code: CodeInvalidQuantity,
			msg:  "c_low",
		},
		{
			name: "unknown membrane",
			c:    Case{Calculation: CalcDonnanManning, Membrane: "NOPE", Inputs: map[string]string{"c_bulk": "0.1 M"}},
			code: CodeUnknownMembrane,
			msg:  "NOPE",
		},
		{
			name: "negative concentration",
			c:    Case{Calculation: CalcDonnan, Inputs: map[string]string{"c_bulk": "-0.1 M", "c_fix": "1 M"}},
			code: string(donnan.ErrCodeInvalidArgument),
		},
		{
			name: "transport number out of range",
			c:    Case{Calculation: CalcPermselectivity, Inputs: map[string]string{"e_mem": "30 mV", "e_ideal": "40 mV", "t_counter": "1.5"}},
			code: CodeInvalidArgument,
			msg:  "transport number",
		},
		{
			name: "negative xi",
			c:    Case{Calculation: CalcDonnanManning, Inputs: map[string]string{"c_bulk": "0.1 M", "c_fix": "1 M", "xi": "-1"}},
			code: CodeInvalidArgument,
		},
	}

	r := newRunner(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.c.Name = "case"
			res := r.Evaluate(tt.c)
			require.False(t, res.OK())
			assert.Equal(t, tt.code, res.ErrorCode, res.Error)
			assert.Contains(t, res.Error, tt.msg)
		})
	}
}

func TestRunMembraneWithoutLibrary(t *testing.T) {
	r := &Runner{Logger: quietLogger()}
	res := r.Evaluate(Case{Name: "x", Calculation: CalcDonnan, Membrane: "CR61", Inputs: map[string]string{"c_bulk": "0.1 M"}})
	assert.Equal(t, CodeUnknownMembrane, res.ErrorCode)
}

func TestRunAnionExchangeMembraneDefaults(t *testing.T) {
	r := newRunner(t)
	res := r.Evaluate(Case{Name: "ar103", Calculation: CalcDonnan, Membrane: "AR103", Inputs: map[string]string{"c_bulk": "0.5 M"}})
	require.True(t, res.OK(), res.Error)
	assert.InDelta(t, 0.0908800090085018, res.Outputs["co_ion"].Magnitude, 1e-6)
	assert.InDelta(t, 2.750880009008502, res.Outputs["counter_ion"].Magnitude, 1e-6)

	// Explicit charges are not rewritten.
	zCounter, zCo := 1, -1
	res = r.Evaluate(Case{
		Name:        "ar103-cation",
		Calculation: CalcDonnan,
		Membrane:    "AR103",
		Ions:        &Ions{ZCounter: &zCounter, ZCo: &zCo},
		Inputs:      map[string]string{"c_bulk": "0.5 M"},
	})
	require.False(t, res.OK())
	assert.Equal(t, string(donnan.ErrCodeInvalidStoichiometry), res.ErrorCode, res.Error)
}

func TestRunNernstUsesRunnerTemperature(t *testing.T) {
	c := Case{Name: "n", Calculation: CalcNernst, Inputs: map[string]string{"c_high": "1 M", "c_low": "0.1 M"}}

	cold := (&Runner{Temperature: 273.15}).Evaluate(c)
	room := (&Runner{}).Evaluate(c)
	require.True(t, cold.OK())
	require.True(t, room.OK())
	assert.Less(t, cold.Outputs["potential"].Magnitude, room.Outputs["potential"].Magnitude)

	c.Inputs["temperature"] = "0 degC"
	explicit := (&Runner{}).Evaluate(c)
	require.True(t, explicit.OK(), explicit.Error)
	assert.InDelta(t, cold.Outputs["potential"].Magnitude, explicit.Outputs["potential"].Magnitude, 1e-12)
}

func TestRunPermselectivityTransportNumber(t *testing.T) {
	c := Case{Name: "p", Calculation: CalcPermselectivity, Inputs: map[string]string{"e_mem": "30 mV", "e_ideal": "40 mV"}}

	def := (&Runner{}).Evaluate(c)
	require.True(t, def.OK(), def.Error)
	assert.InDelta(t, 0.75, def.Outputs["permselectivity"].Magnitude, 1e-12)

	zero := 0.0
	configured := (&Runner{TransportNumber: &zero}).Evaluate(c)
	require.True(t, configured.OK(), configured.Error)
	assert.InDelta(t, 0.875, configured.Outputs["permselectivity"].Magnitude, 1e-12)

	c.Inputs["t_counter"] = "0.5"
	explicit := (&Runner{TransportNumber: &zero}).Evaluate(c)
	require.True(t, explicit.OK(), explicit.Error)
	assert.InDelta(t, 0.75, explicit.Outputs["permselectivity"].Magnitude, 1e-12)
}

func TestRunCancelled(t *testing.T) {
	f, err := LoadFile(batchFile)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = newRunner(t).Run(ctx, f)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("name: x\ncases:\n  - name: a\n    calculation: donnan\n    bogus: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no cases", "name: x\ncases: []\n", "Cases"},
		{"no name", "cases:\n  - name: a\n    calculation: donnan\n", "Name"},
		{"bad calculation", "name: x\ncases:\n  - name: a\n    calculation: osmosis\n", "Calculation"},
		{"duplicate case", "name: x\ncases:\n  - name: a\n    calculation: donnan\n  - name: a\n    calculation: nernst\n", "already used"},
		{"negative workers", "name: x\nworkers: -1\ncases:\n  - name: a\n    calculation: donnan\n", "Workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIonsParams(t *testing.T) {
	var nilIons *Ions
	assert.Equal(t, donnan.DefaultParams(), nilIons.Params())

	z, g := 2, 0.8
	p := (&Ions{ZCounter: &z, Gamma: &g}).Params()
	assert.Equal(t, 2, p.ZCounter)
	assert.Equal(t, 0.8, p.Gamma)
	assert.Equal(t, -1, p.ZCo)
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", g.Generate())
	assert.Equal(t, "b", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}
