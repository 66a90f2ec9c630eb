package swelling

import (
	"errors"
	"fmt"
	"math"
)

const (
	// WaterMolarMass in g/mol.
	WaterMolarMass = 18.015

	// WaterMolarVolume in L/mol.
	WaterMolarVolume = 0.0182

	// WaterDensity at 25 degC in g/cm**3.
	WaterDensity = 0.997
)

// ErrInvalidArgument indicates a non-physical input.
var ErrInvalidArgument = errors.New("swelling: invalid argument")

// WaterVolumeFraction returns phi_w = SD / (SD + rho_w/rho_p).
// Densities share any consistent unit.
func WaterVolumeFraction(sd, rhoWater, rhoPolymer float64) (float64, error) {
	if err := nonNegative("swelling degree", sd); err != nil {
		return 0, err
	}
	if err := positive("water density", rhoWater); err != nil {
		return 0, err
	}
	if err := positive("polymer density", rhoPolymer); err != nil {
		return 0, err
	}
	return sd / (sd + rhoWater/rhoPolymer), nil
}

// FixedChargeConcentration returns the fixed charge per volume of sorbed
// water, IEC / SD * rho_w. With IEC in meq/g, SD in g/g and rho_w in g/cm**3
// the result is in mol/L (monovalent fixed groups).
func FixedChargeConcentration(iec, sd, rhoWater float64) (float64, error) {
	if err := nonNegative("ion exchange capacity", iec); err != nil {
		return 0, err
	}
	if err := positive("swelling degree", sd); err != nil {
		return 0, err
	}
	if err := positive("water density", rhoWater); err != nil {
		return 0, err
	}
	return iec / sd * rhoWater, nil
}

// WaterPartitionCoefficient returns K_w = phi_w M_w / (C_w V_w), where
// cWater is the mass concentration of water in the external solution in
// g/cm**3 (kg/L).
func WaterPartitionCoefficient(volFrac, cWater float64) (float64, error) {
	if err := fraction(volFrac); err != nil {
		return 0, err
	}
	if err := positive("water concentration", cWater); err != nil {
		return 0, err
	}
	// g/cm**3 -> g/L
	return volFrac * WaterMolarMass / (cWater * 1000 * WaterMolarVolume), nil
}

// FloryHugginsChi returns the polymer-water interaction parameter implied by
// Flory-Huggins theory for a membrane at water activity aw:
//
//	chi = (ln(aw/phi) - 1 + phi) / (1 - phi)^2
func FloryHugginsChi(waterActivity, volFrac float64) (float64, error) {
	if !(waterActivity > 0 && waterActivity <= 1) {
		return 0, fmt.Errorf("%w: water activity must be in (0, 1], got %g", ErrInvalidArgument, waterActivity)
	}
	if err := fraction(volFrac); err != nil {
		return 0, err
	}
	if volFrac == 1 {
		return 0, fmt.Errorf("%w: chi is undefined for pure water (phi = 1)", ErrInvalidArgument)
	}
	return (math.Log(waterActivity/volFrac) - 1 + volFrac) / math.Pow(1-volFrac, 2), nil
}

func positive(name string, x float64) error {
	if !(x > 0) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidArgument, name, x)
	}
	return nil
}

func nonNegative(name string, x float64) error {
	if !(x >= 0) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: %s must be non-negative and finite, got %g", ErrInvalidArgument, name, x)
	}
	return nil
}

func fraction(phi float64) error {
	if !(phi > 0 && phi <= 1) {
		return fmt.Errorf("%w: water volume fraction must be in (0, 1], got %g", ErrInvalidArgument, phi)
	}
	return nil
}
