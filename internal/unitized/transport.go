package unitized

import (
	"github.com/roach88/memtk/internal/diffusion"
	"github.com/roach88/memtk/internal/potential"
	"github.com/roach88/memtk/internal/swelling"
	"github.com/roach88/memtk/internal/units"
)

// NernstOptions mirrors potential.NernstOptions with a tagged temperature.
// Only an untagged zero Temperature takes potential.RoomTemperature; a tagged
// value is converted and used as given, so "0 K" is rejected.
type NernstOptions struct {
	Z           int
	Temperature units.Quantity
	GammaHigh   float64
	GammaLow    float64
}

// DefaultNernstOptions is potential.DefaultNernstOptions with the temperature
// tagged in kelvin.
func DefaultNernstOptions() NernstOptions {
	d := potential.DefaultNernstOptions()
	return NernstOptions{
		Z:           d.Z,
		Temperature: units.New(d.Temperature, Temperature),
		GammaHigh:   d.GammaHigh,
		GammaLow:    d.GammaLow,
	}
}

// Nernst returns the Nernst potential in V.
func Nernst(cHigh, cLow units.Quantity, opts NernstOptions) (units.Quantity, error) {
	c, err := convert(
		arg{"c_high", cHigh, Concentration},
		arg{"c_low", cLow, Concentration},
		arg{"temperature", opts.Temperature, Temperature},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	temp := c[2]
	if !opts.Temperature.IsTagged() && opts.Temperature.Magnitude == 0 {
		temp = potential.RoomTemperature
	}
	e, err := potential.Nernst(c[0], c[1], potential.NernstOptions{
		Z:           opts.Z,
		Temperature: temp,
		GammaHigh:   opts.GammaHigh,
		GammaLow:    opts.GammaLow,
	})
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(e, Potential), nil
}

// ApparentPermselectivity returns the dimensionless apparent permselectivity.
// eMem and eIdeal may carry any potential unit.
func ApparentPermselectivity(eMem, eIdeal, tCounter units.Quantity) (units.Quantity, error) {
	c, err := convert(
		arg{"e_mem", eMem, Potential},
		arg{"e_ideal", eIdeal, Potential},
		arg{"t_counter", tCounter, Dimensionless},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	p, err := potential.ApparentPermselectivity(c[0], c[1], c[2])
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(p, Dimensionless), nil
}

// MackieMeares returns the membrane diffusion coefficient in m**2/s.
func MackieMeares(dBulk, volFrac units.Quantity) (units.Quantity, error) {
	c, err := convert(
		arg{"d_bulk", dBulk, Diffusivity},
		arg{"vol_frac", volFrac, Dimensionless},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	d, err := diffusion.MackieMeares(c[0], c[1])
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(d, Diffusivity), nil
}

// WaterVolumeFraction returns the dimensionless water volume fraction from
// the swelling degree (g/g) and the water and polymer densities.
func WaterVolumeFraction(sd, rhoWater, rhoPolymer units.Quantity) (units.Quantity, error) {
	c, err := convert(
		arg{"swelling_degree", sd, Dimensionless},
		arg{"rho_water", rhoWater, Density},
		arg{"rho_polymer", rhoPolymer, Density},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	phi, err := swelling.WaterVolumeFraction(c[0], c[1], c[2])
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(phi, Dimensionless), nil
}

// FixedChargeConcentration returns the fixed charge per volume of sorbed
// water in mol/L.
func FixedChargeConcentration(iec, sd, rhoWater units.Quantity) (units.Quantity, error) {
	c, err := convert(
		arg{"iec", iec, IEC},
		arg{"swelling_degree", sd, Dimensionless},
		arg{"rho_water", rhoWater, Density},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	cf, err := swelling.FixedChargeConcentration(c[0], c[1], c[2])
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(cf, Concentration), nil
}

// WaterPartitionCoefficient returns the dimensionless water partition
// coefficient K_w from the water volume fraction and the mass concentration
// of water in the external solution.
func WaterPartitionCoefficient(volFrac, cWater units.Quantity) (units.Quantity, error) {
	c, err := convert(
		arg{"vol_frac", volFrac, Dimensionless},
		arg{"c_water", cWater, Density},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	kw, err := swelling.WaterPartitionCoefficient(c[0], c[1])
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(kw, Dimensionless), nil
}

// FloryHugginsChi returns the polymer-water interaction parameter.
func FloryHugginsChi(waterActivity, volFrac units.Quantity) (units.Quantity, error) {
	c, err := convert(
		arg{"water_activity", waterActivity, Dimensionless},
		arg{"vol_frac", volFrac, Dimensionless},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	chi, err := swelling.FloryHugginsChi(c[0], c[1])
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(chi, Dimensionless), nil
}
