package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/memtk/internal/donnan"
)

var testdataDir = filepath.Join("..", "..", "testdata", "membranes")

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.cue"), []byte(content), 0644))
	return dir
}

func TestLoadTestdata(t *testing.T) {
	lib, errs := Load(testdataDir, LoadModeCollectAll)
	require.Empty(t, errs)
	require.NotNil(t, lib)

	assert.Equal(t, 1, lib.FileCount)
	assert.Equal(t, []string{"AR103", "CMX", "CR61"}, lib.Names())

	cr61, err := lib.Get("CR61")
	require.NoError(t, err)
	assert.Equal(t, "CR61", cr61.Name)
	assert.Equal(t, -1, cr61.ZFix)
	assert.Equal(t, 30.0, cr61.DielectricConstant)
	require.NotNil(t, cr61.WaterVolumeFraction)
	assert.Equal(t, 0.32, *cr61.WaterVolumeFraction)

	cFix, err := cr61.FixedChargeConcentration()
	require.NoError(t, err)
	assert.InDelta(t, 3.21, cFix, 1e-12)

	xi, err := cr61.Xi(298.15)
	require.NoError(t, err)
	assert.Equal(t, 1.83, xi)
}

func TestLoadConvertsFixedChargeUnits(t *testing.T) {
	lib, errs := Load(testdataDir, LoadModeCollectAll)
	require.Empty(t, errs)

	ar103, err := lib.Get("AR103")
	require.NoError(t, err)
	assert.Equal(t, 1, ar103.ZFix)

	cFix, err := ar103.FixedChargeConcentration()
	require.NoError(t, err)
	assert.InDelta(t, 2.66, cFix, 1e-12)

	p := ar103.Apply(donnan.DefaultParams())
	assert.Equal(t, 1, p.ZFix)
}

func TestLoadDerivesFixedChargeFromUptake(t *testing.T) {
	lib, errs := Load(testdataDir, LoadModeCollectAll)
	require.Empty(t, errs)

	cmx, err := lib.Get("CMX")
	require.NoError(t, err)
	require.NotNil(t, cmx.IEC)
	require.NotNil(t, cmx.Thickness)
	assert.Nil(t, cmx.ManningXi)

	cFix, err := cmx.FixedChargeConcentration()
	require.NoError(t, err)
	assert.InDelta(t, 8.973, cFix, 1e-9)

	xi, err := cmx.Xi(298.15)
	require.NoError(t, err)
	assert.InDelta(t, 3.278327719606851, xi, 1e-9)
}

func TestGetUnknownMembrane(t *testing.T) {
	lib, errs := Load(testdataDir, LoadModeFailFast)
	require.Empty(t, errs)

	_, err := lib.Get("Nafion117")
	require.Error(t, err)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeUnknownMembrane, le.Code)
}

func TestLoadNonExistentDirectory(t *testing.T) {
	lib, errs := Load("/nonexistent/membranes", LoadModeFailFast)
	assert.Nil(t, lib)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeNotFound)
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, errs := Load(t.TempDir(), LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), ErrCodeNoFiles)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := writeLibrary(t, `package lib

membrane: X: {
	fixed_charge: "1 mol/L"
	colour:       "blue"
}
`)
	_, errs := Load(dir, LoadModeFailFast)
	require.Len(t, errs, 1)

	var le *LoadError
	require.True(t, errors.As(errs[0], &le))
	assert.Equal(t, ErrCodeInvalidMembrane, le.Code)
	assert.Contains(t, le.Message, "colour")
}

func TestLoadCollectsAllErrors(t *testing.T) {
	dir := writeLibrary(t, `package lib

membrane: Good: fixed_charge: "1 mol/L"
membrane: MassUnits: fixed_charge: "1 g/L"
membrane: NoCharge: description: "nothing to compute from"
membrane: BadFraction: {
	fixed_charge:          "1 mol/L"
	water_volume_fraction: 1.5
}
`)
	lib, errs := Load(dir, LoadModeCollectAll)
	require.Len(t, errs, 3)
	assert.Equal(t, []string{"Good"}, lib.Names())

	codes := map[string]bool{}
	for _, err := range errs {
		var le *LoadError
		require.True(t, errors.As(err, &le))
		codes[le.Code] = true
	}
	assert.True(t, codes[ErrCodeInvalidQuantity])
	assert.True(t, codes[ErrCodeInvalidMembrane])

	_, errs = Load(dir, LoadModeFailFast)
	assert.Len(t, errs, 1)
}

func TestCompileMembrane(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		membrane: Nafion: {
			fixed_charge: "1.2 M"
			manning_xi:   2.2
		}
	`)
	require.NoError(t, v.Err())

	m, err := CompileMembrane(v.LookupPath(cue.ParsePath("membrane.Nafion")))
	require.NoError(t, err)
	assert.Equal(t, "Nafion", m.Name)
	assert.Equal(t, -1, m.ZFix)
	assert.Equal(t, "", m.Description)

	cFix, err := m.FixedChargeConcentration()
	require.NoError(t, err)
	assert.InDelta(t, 1.2, cFix, 1e-12)
}

func TestCompileMembraneRejectsNegativeCharge(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`membrane: Neg: fixed_charge: "-1 mol/L"`)
	require.NoError(t, v.Err())

	_, err := CompileMembrane(v.LookupPath(cue.ParsePath("membrane.Neg")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "z_fix")
}

func TestCompileMembraneRejectsZeroValence(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`membrane: Z: { fixed_charge: "1 mol/L", z_fix: 0 }`)
	require.NoError(t, v.Err())

	_, err := CompileMembrane(v.LookupPath(cue.ParsePath("membrane.Z")))
	require.Error(t, err)
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "cue", ce.Field)
}

func TestMatchCounterIon(t *testing.T) {
	p := donnan.DefaultParams()
	p.ZFix = 1
	p = MatchCounterIon(p)
	assert.Equal(t, -1, p.ZCounter)
	assert.Equal(t, 1, p.ZCo)
	require.NoError(t, p.Validate())

	// Already opposite: untouched.
	q := donnan.DefaultParams()
	assert.Equal(t, q, MatchCounterIon(q))

	// Stoichiometry survives the flip.
	q.ZFix, q.ZCounter, q.NuCo = 1, 2, 2
	q = MatchCounterIon(q)
	assert.Equal(t, -2, q.ZCounter)
	assert.Equal(t, 1, q.ZCo)
	assert.Equal(t, 2, q.NuCo)
}
