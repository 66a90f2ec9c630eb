package potential

import (
	"errors"
	"fmt"
	"math"
)

// Physical constants (CODATA 2018 exact values).
const (
	GasConstant     = 8.314462618 // J/(mol K)
	Faraday         = 96485.33212 // C/mol
	RoomTemperature = 298.15      // K
)

// DefaultTransportNumber is the counter-ion transport number of a 1:1 salt
// with equal ion mobilities.
const DefaultTransportNumber = 0.5

// ErrInvalidArgument indicates a non-physical input.
var ErrInvalidArgument = errors.New("potential: invalid argument")

// NernstOptions configures Nernst. Every field is used as given; start from
// DefaultNernstOptions and override what differs.
type NernstOptions struct {
	// Z is the signed ion valence.
	Z int

	// Temperature in kelvin.
	Temperature float64

	// GammaHigh and GammaLow are the activity coefficients on each side.
	GammaHigh float64
	GammaLow  float64
}

// DefaultNernstOptions is a monovalent cation at RoomTemperature with ideal
// activities on both sides.
func DefaultNernstOptions() NernstOptions {
	return NernstOptions{Z: 1, Temperature: RoomTemperature, GammaHigh: 1, GammaLow: 1}
}

// Nernst returns the equilibrium potential of an ion across a membrane that
// separates concentrations cHigh and cLow:
//
//	E = RT/(zF) ln((gamma_high cHigh) / (gamma_low cLow))
func Nernst(cHigh, cLow float64, opts NernstOptions) (float64, error) {
	if opts.Z == 0 {
		return 0, fmt.Errorf("%w: ion valence must be non-zero", ErrInvalidArgument)
	}
	if !positive(cHigh) || !positive(cLow) {
		return 0, fmt.Errorf("%w: concentrations must be positive and finite, got %g and %g", ErrInvalidArgument, cHigh, cLow)
	}
	if !positive(opts.Temperature) {
		return 0, fmt.Errorf("%w: temperature must be positive, got %g K", ErrInvalidArgument, opts.Temperature)
	}
	if !positive(opts.GammaHigh) || !positive(opts.GammaLow) {
		return 0, fmt.Errorf("%w: activity coefficients must be positive, got %g and %g", ErrInvalidArgument, opts.GammaHigh, opts.GammaLow)
	}

	return GasConstant * opts.Temperature / (float64(opts.Z) * Faraday) *
		math.Log((opts.GammaHigh*cHigh)/(opts.GammaLow*cLow)), nil
}

// ApparentPermselectivity returns the apparent permselectivity of a membrane
// from its measured potential eMem and the ideal (perfectly selective)
// potential eIdeal:
//
//	(E_mem/E_ideal + 1 - 2t) / (2 - 2t)
//
// tCounter is the counter-ion transport number in free solution.
func ApparentPermselectivity(eMem, eIdeal, tCounter float64) (float64, error) {
	if !(tCounter >= 0 && tCounter <= 1) {
		return 0, fmt.Errorf("%w: transport number must be between 0 and 1, got %g", ErrInvalidArgument, tCounter)
	}
	if tCounter == 1 {
		return 0, fmt.Errorf("%w: transport number 1 leaves permselectivity undefined", ErrInvalidArgument)
	}
	if eIdeal == 0 || math.IsNaN(eIdeal) || math.IsInf(eIdeal, 0) {
		return 0, fmt.Errorf("%w: ideal potential must be non-zero and finite, got %g", ErrInvalidArgument, eIdeal)
	}
	if math.IsNaN(eMem) || math.IsInf(eMem, 0) {
		return 0, fmt.Errorf("%w: membrane potential must be finite, got %g", ErrInvalidArgument, eMem)
	}
	return (eMem/eIdeal + 1 - 2*tCounter) / (2 - 2*tCounter), nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}
