package diffusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMackieMeares(t *testing.T) {
	d, err := MackieMeares(1e-9, 0.4)
	require.NoError(t, err)
	assert.InDelta(t, 6.25e-11, d, 1e-20)

	// A fully swollen membrane is unobstructed.
	d, err = MackieMeares(2.03e-9, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2.03e-9, d, 1e-20)
}

func TestMackieMearesRejectsVolumeFraction(t *testing.T) {
	for _, phi := range []float64{0, -0.1, 1.5} {
		_, err := MackieMeares(1e-9, phi)
		require.ErrorIs(t, err, ErrInvalidArgument, "phi=%g", phi)
	}

	_, err := MackieMeares(-1e-9, 0.4)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
