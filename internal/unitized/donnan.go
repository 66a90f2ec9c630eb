package unitized

import (
	"github.com/roach88/memtk/internal/donnan"
	"github.com/roach88/memtk/internal/manning"
	"github.com/roach88/memtk/internal/units"
)

// Donnan returns the membrane co-ion concentration in mol/L.
func Donnan(cBulk, cFix units.Quantity, p donnan.Params) (units.Quantity, error) {
	part, err := DonnanPartition(cBulk, cFix, p)
	if err != nil {
		return units.Quantity{}, err
	}
	return part.CoIon, nil
}

// DonnanPartition returns both membrane ion concentrations in mol/L.
func DonnanPartition(cBulk, cFix units.Quantity, p donnan.Params) (Partition, error) {
	return DonnanPartitionWith(donnan.DefaultSolver, cBulk, cFix, p)
}

// DonnanPartitionWith is DonnanPartition with explicit solver settings.
func DonnanPartitionWith(s donnan.Solver, cBulk, cFix units.Quantity, p donnan.Params) (Partition, error) {
	c, err := convert(
		arg{"c_bulk", cBulk, Concentration},
		arg{"c_fix", cFix, Concentration},
	)
	if err != nil {
		return Partition{}, err
	}
	part, err := s.Solve(c[0], c[1], p)
	if err != nil {
		return Partition{}, err
	}
	return partition(part), nil
}

// ManningEquilibrium solves the Donnan-Manning equilibrium. cFix is unsigned
// as in DonnanPartition.
func ManningEquilibrium(cBulk, cFix, xi units.Quantity, p donnan.Params) (Partition, error) {
	return ManningEquilibriumWith(donnan.DefaultSolver, cBulk, cFix, xi, p)
}

// ManningEquilibriumWith is ManningEquilibrium with explicit solver settings.
func ManningEquilibriumWith(s donnan.Solver, cBulk, cFix, xi units.Quantity, p donnan.Params) (Partition, error) {
	c, err := convert(
		arg{"c_bulk", cBulk, Concentration},
		arg{"c_fix", cFix, Concentration},
		arg{"xi", xi, Dimensionless},
	)
	if err != nil {
		return Partition{}, err
	}
	mp, err := manning.EquilibriumWith(s, c[0], c[1], c[2], p)
	if err != nil {
		return Partition{}, err
	}
	out := partition(mp.Partition)
	out.MeanActivity = &mp.MeanActivity
	return out, nil
}

// ManningActivity returns a Manning activity coefficient. cFix is signed.
func ManningActivity(xi, cFix, cs units.Quantity, kind manning.Kind, ions manning.Ions) (units.Quantity, error) {
	c, err := convert(
		arg{"xi", xi, Dimensionless},
		arg{"c_fix", cFix, Concentration},
		arg{"c_s", cs, Concentration},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	g, err := manning.ActivityCoefficient(c[0], c[1], c[2], kind, ions)
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(g, Dimensionless), nil
}

// ManningDiffusion returns the normalized membrane diffusion coefficient
// D_mem/D_bulk. cFix is signed.
func ManningDiffusion(xi, cFix, cs, volFrac units.Quantity, kind manning.Kind, ions manning.Ions) (units.Quantity, error) {
	c, err := convert(
		arg{"xi", xi, Dimensionless},
		arg{"c_fix", cFix, Concentration},
		arg{"c_s", cs, Concentration},
		arg{"vol_frac", volFrac, Dimensionless},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	d, err := manning.DiffusionCoefficient(c[0], c[1], c[2], c[3], kind, ions)
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(d, Dimensionless), nil
}

// ManningLatticeSum evaluates the lattice sum A(x, y) of Manning's diffusion
// theory. Both arguments are dimensionless.
func ManningLatticeSum(x, y units.Quantity, ions manning.Ions) (units.Quantity, error) {
	c, err := convert(
		arg{"x", x, Dimensionless},
		arg{"y", y, Dimensionless},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(manning.LatticeSum(c[0], c[1], ions), Dimensionless), nil
}

// ManningBeta returns the thermodynamic factor of an ion in the membrane.
// cFix is signed.
func ManningBeta(xi, cFix, cCounter, cs units.Quantity, kind manning.Kind, ions manning.Ions) (units.Quantity, error) {
	c, err := convert(
		arg{"xi", xi, Dimensionless},
		arg{"c_fix", cFix, Concentration},
		arg{"c_counter", cCounter, Concentration},
		arg{"c_s", cs, Concentration},
	)
	if err != nil {
		return units.Quantity{}, err
	}
	b, err := manning.Beta(c[0], c[1], c[2], c[3], kind, ions)
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(b, Dimensionless), nil
}

// ManningParameter estimates xi from the fixed charge concentration,
// relative permittivity and temperature.
func ManningParameter(cFix units.Quantity, dielectric float64, temperature units.Quantity) (units.Quantity, error) {
	cf, err := canonical("c_fix", cFix, Concentration)
	if err != nil {
		return units.Quantity{}, err
	}
	tk, err := canonical("temperature", temperature, Temperature)
	if err != nil {
		return units.Quantity{}, err
	}
	xi, err := manning.Parameter(cf, dielectric, tk)
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(xi, Dimensionless), nil
}
