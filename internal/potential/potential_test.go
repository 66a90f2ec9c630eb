package potential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNernst(t *testing.T) {
	tests := []struct {
		name  string
		cHigh float64
		cLow  float64
		opts  NernstOptions
		want  float64
	}{
		{"defaults", 0.5, 0.1, DefaultNernstOptions(), 0.04135061090634481},
		{"divalent", 0.5, 0.1, NernstOptions{Z: 2, Temperature: RoomTemperature, GammaHigh: 1, GammaLow: 1}, 0.020675305453172404},
		{"body temperature", 1, 0.1, NernstOptions{Z: 1, Temperature: 310, GammaHigh: 1, GammaLow: 1}, 0.06151064364438594},
		{"anion", 0.5, 0.1, NernstOptions{Z: -1, Temperature: RoomTemperature, GammaHigh: 1, GammaLow: 1}, -0.04135061090634481},
		{"equal activities", 0.5, 0.5, DefaultNernstOptions(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Nernst(tt.cHigh, tt.cLow, tt.opts)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, e, 1e-12)
		})
	}
}

func TestNernstActivityCoefficients(t *testing.T) {
	// gamma_high*cHigh == gamma_low*cLow cancels the potential.
	opts := DefaultNernstOptions()
	opts.GammaHigh = 0.5
	e, err := Nernst(0.5, 0.25, opts)
	require.NoError(t, err)
	assert.InDelta(t, 0, e, 1e-15)
}

func TestNernstRejectsNonPhysicalInputs(t *testing.T) {
	_, err := Nernst(0, 0.1, DefaultNernstOptions())
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Nernst(0.5, -0.1, DefaultNernstOptions())
	require.ErrorIs(t, err, ErrInvalidArgument)

	tests := []struct {
		name   string
		modify func(*NernstOptions)
	}{
		{"zero valence", func(o *NernstOptions) { o.Z = 0 }},
		{"negative temperature", func(o *NernstOptions) { o.Temperature = -5 }},
		{"zero temperature", func(o *NernstOptions) { o.Temperature = 0 }},
		{"negative gamma", func(o *NernstOptions) { o.GammaLow = -1 }},
		{"zero gamma high", func(o *NernstOptions) { o.GammaHigh = 0 }},
		{"zero gamma low", func(o *NernstOptions) { o.GammaLow = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultNernstOptions()
			tt.modify(&opts)
			_, err := Nernst(0.5, 0.1, opts)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	// The zero value is not a set of defaults.
	_, err = Nernst(0.5, 0.1, NernstOptions{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestApparentPermselectivity(t *testing.T) {
	p, err := ApparentPermselectivity(30, 40, DefaultTransportNumber)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, p, 1e-12)

	p, err = ApparentPermselectivity(35, 37.8, 0.396)
	require.NoError(t, err)
	assert.InDelta(t, 0.9386, p, 1e-4)

	p, err = ApparentPermselectivity(0, -40, DefaultTransportNumber)
	require.NoError(t, err)
	assert.InDelta(t, 0, p, 1e-12)

	p, err = ApparentPermselectivity(-40, -40, DefaultTransportNumber)
	require.NoError(t, err)
	assert.InDelta(t, 1, p, 1e-12)
}

func TestApparentPermselectivityRejectsTransportNumber(t *testing.T) {
	for _, tc := range []float64{2, -2} {
		_, err := ApparentPermselectivity(30, 40, tc)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "must be between 0 and 1")
	}

	_, err := ApparentPermselectivity(30, 0, DefaultTransportNumber)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
