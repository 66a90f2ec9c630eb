package swelling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterVolumeFraction(t *testing.T) {
	phi, err := WaterVolumeFraction(0.25, WaterDensity, 1.2)
	require.NoError(t, err)
	assert.InDelta(t, 0.2313030069390902, phi, 1e-12)

	phi, err = WaterVolumeFraction(0, WaterDensity, 1.2)
	require.NoError(t, err)
	assert.Zero(t, phi)

	_, err = WaterVolumeFraction(0.25, WaterDensity, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFixedChargeConcentration(t *testing.T) {
	c, err := FixedChargeConcentration(2.0, 0.3, WaterDensity)
	require.NoError(t, err)
	assert.InDelta(t, 6.6466666666666665, c, 1e-12)

	_, err = FixedChargeConcentration(2.0, 0, WaterDensity)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWaterPartitionCoefficient(t *testing.T) {
	k, err := WaterPartitionCoefficient(0.4, WaterDensity)
	require.NoError(t, err)
	assert.InDelta(t, 0.39712544226084845, k, 1e-12)

	_, err = WaterPartitionCoefficient(1.4, WaterDensity)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFloryHugginsChi(t *testing.T) {
	chi, err := FloryHugginsChi(0.95, 0.3)
	require.NoError(t, err)
	assert.InDelta(t, 0.9238357345681334, chi, 1e-12)

	_, err = FloryHugginsChi(0.95, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FloryHugginsChi(1.2, 0.3)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
