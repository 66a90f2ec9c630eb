package manning

import (
	"fmt"
	"math"
)

// SI constants (2019 exact values, CODATA 2018 for epsilon_0).
const (
	elementaryCharge   = 1.602176634e-19  // C
	vacuumPermittivity = 8.8541878128e-12 // F/m
	boltzmann          = 1.380649e-23     // J/K
	avogadro           = 6.02214076e23    // 1/mol
)

// DefaultDielectricConstant is the relative permittivity assumed for the
// hydrated polymer when none is measured.
const DefaultDielectricConstant = 30

// Parameter estimates the Manning parameter of a membrane from its fixed
// charge concentration (mol/L), relative permittivity and temperature (K):
//
//	xi = e^2 / (4 pi eps0 eps kB T b),  b = (|C_fix| N_A)^(-1/3)
//
// b is the mean spacing between fixed charges assuming they fill the volume
// uniformly.
func Parameter(cFix, dielectric, temperature float64) (float64, error) {
	if cFix == 0 || math.IsNaN(cFix) || math.IsInf(cFix, 0) {
		return 0, fmt.Errorf("%w: fixed charge must be non-zero and finite, got %g", ErrInvalidArgument, cFix)
	}
	if !(dielectric > 0) || math.IsInf(dielectric, 0) {
		return 0, fmt.Errorf("%w: dielectric constant must be positive, got %g", ErrInvalidArgument, dielectric)
	}
	if !(temperature > 0) || math.IsInf(temperature, 0) {
		return 0, fmt.Errorf("%w: temperature must be positive, got %g K", ErrInvalidArgument, temperature)
	}

	// mol/L -> charges per m**3
	b := math.Pow(math.Abs(cFix)*1000*avogadro, -1.0/3)
	return elementaryCharge * elementaryCharge /
		(4 * math.Pi * vacuumPermittivity * dielectric * boltzmann * temperature * b), nil
}
