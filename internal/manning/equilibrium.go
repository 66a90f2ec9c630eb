package manning

import (
	"fmt"
	"math"

	"github.com/roach88/memtk/internal/donnan"
)

// MethodManning marks a partition solved with Manning activity coefficients.
const MethodManning donnan.Method = "manning"

// lowerBracket scales the bulk concentration to the smallest co-ion
// concentration tried. X = C_fix/C_s diverges at zero.
const lowerBracket = 1e-12

// Partition is a Donnan-Manning equilibrium result.
type Partition struct {
	donnan.Partition

	// MeanActivity is the membrane-phase mean salt activity coefficient at
	// the solution.
	MeanActivity float64 `json:"mean_activity"`
}

// Equilibrium solves the Donnan relation with Manning activity coefficients
// using donnan.DefaultSolver.
func Equilibrium(cBulk, cFix, xi float64, p donnan.Params) (Partition, error) {
	return EquilibriumWith(donnan.DefaultSolver, cBulk, cFix, xi, p)
}

// EquilibriumWith solves
//
//	C_co^nu_co * C_ct^nu_ct * gm^nu = gb^nu * (nu_ct C_b)^nu_ct * (nu_co C_b)^nu_co
//
// for the membrane co-ion concentration, where nu = nu_ct + nu_co, gb is
// p.Gamma read as the bulk mean activity coefficient, and gm is the Manning
// mean activity coefficient evaluated at the membrane mobile salt
// concentration C_co/nu_co. cFix is unsigned; its sign comes from p.ZFix.
func EquilibriumWith(s donnan.Solver, cBulk, cFix, xi float64, p donnan.Params) (Partition, error) {
	if err := donnan.ValidateInputs(cBulk, cFix, p); err != nil {
		return Partition{}, err
	}
	if !(xi >= 0) || math.IsInf(xi, 0) {
		return Partition{}, fmt.Errorf("%w: Manning parameter must be non-negative and finite, got %g", ErrInvalidArgument, xi)
	}

	ions := IonsFromParams(p)
	nuCt, nuCo := float64(p.NuCounter), float64(p.NuCo)
	nu := nuCt + nuCo
	rhs := math.Pow(p.Gamma, nu) * math.Pow(nuCt*cBulk, nuCt) * math.Pow(nuCo*cBulk, nuCo)

	gm := func(cCo float64) float64 {
		var x float64
		if cFix > 0 {
			x = cFix / (cCo / nuCo)
		}
		gCt, gCo := coefficients(xi, x, ions)
		return meanOf(gCt, gCo, ions)
	}

	f := func(cCo float64) float64 {
		cCt := p.CounterIonConcentration(cCo, cFix)
		return math.Pow(cCo, nuCo)*math.Pow(cCt, nuCt)*math.Pow(gm(cCo), nu) - rhs
	}

	res, err := s.FindRoot(f, lowerBracket*cBulk, 2*nuCo*cBulk, p, map[string]string{
		"c_bulk": fmt.Sprintf("%g", cBulk),
		"c_fix":  fmt.Sprintf("%g", cFix),
		"xi":     fmt.Sprintf("%g", xi),
	})
	if err != nil {
		return Partition{}, err
	}

	return Partition{
		Partition: donnan.Partition{
			CoIon:      res.Root,
			CounterIon: p.CounterIonConcentration(res.Root, cFix),
			Method:     MethodManning,
			Iterations: res.Iterations,
		},
		MeanActivity: gm(res.Root),
	}, nil
}
