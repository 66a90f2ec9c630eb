package donnan

import (
	"fmt"
	"math"

	"github.com/roach88/memtk/internal/rootfind"
)

// Method records how a Partition was computed.
type Method string

const (
	// MethodClosedForm is the asinh solution for 1:1 salts with Gamma = 1.
	MethodClosedForm Method = "closed_form"

	// MethodNumeric is the bracketed root search on the general relation.
	MethodNumeric Method = "numeric"
)

// Partition is the membrane-phase ion composition at equilibrium.
// Concentrations share the units of the inputs.
type Partition struct {
	CoIon      float64 `json:"co_ion"`
	CounterIon float64 `json:"counter_ion"`
	Method     Method  `json:"method"`
	Iterations int     `json:"iterations,omitempty"`
}

// Solver holds root-finder settings. The zero value uses rootfind defaults.
//
// Solver is a plain value and safe for concurrent use.
type Solver struct {
	// XTol is the absolute tolerance floor on the co-ion concentration.
	XTol float64

	// MaxIterations bounds the Brent search.
	MaxIterations int
}

// DefaultSolver is used by the package-level functions.
var DefaultSolver = Solver{}

// Equilibrium returns the membrane co-ion concentration using DefaultSolver.
func Equilibrium(cBulk, cFix float64, p Params) (float64, error) {
	return DefaultSolver.Equilibrium(cBulk, cFix, p)
}

// Solve returns the full membrane partition using DefaultSolver.
func Solve(cBulk, cFix float64, p Params) (Partition, error) {
	return DefaultSolver.Solve(cBulk, cFix, p)
}

// Numeric solves the general relation even when the closed form applies.
func Numeric(cBulk, cFix float64, p Params) (Partition, error) {
	return DefaultSolver.Numeric(cBulk, cFix, p)
}

// ClosedForm is the 1:1, Gamma = 1 solution. It performs no validation.
func ClosedForm(cBulk, cFix float64) float64 {
	return cBulk * math.Exp(-math.Asinh(cFix/(2*cBulk)))
}

// Equilibrium returns the membrane co-ion concentration.
func (s Solver) Equilibrium(cBulk, cFix float64, p Params) (float64, error) {
	part, err := s.Solve(cBulk, cFix, p)
	if err != nil {
		return 0, err
	}
	return part.CoIon, nil
}

// Solve returns the membrane partition, taking the closed form when p allows.
func (s Solver) Solve(cBulk, cFix float64, p Params) (Partition, error) {
	if err := ValidateInputs(cBulk, cFix, p); err != nil {
		return Partition{}, err
	}
	if p.IsMonovalentIdeal() {
		cCo := ClosedForm(cBulk, cFix)
		return Partition{
			CoIon:      cCo,
			CounterIon: p.CounterIonConcentration(cCo, cFix),
			Method:     MethodClosedForm,
		}, nil
	}
	return s.numeric(cBulk, cFix, p)
}

// Numeric solves the general relation even when the closed form applies.
func (s Solver) Numeric(cBulk, cFix float64, p Params) (Partition, error) {
	if err := ValidateInputs(cBulk, cFix, p); err != nil {
		return Partition{}, err
	}
	return s.numeric(cBulk, cFix, p)
}

func (s Solver) numeric(cBulk, cFix float64, p Params) (Partition, error) {
	nuCt, nuCo := float64(p.NuCounter), float64(p.NuCo)
	rhs := p.Gamma * math.Pow(nuCt, nuCt) * math.Pow(nuCo, nuCo) * math.Pow(cBulk, nuCt+nuCo)

	f := func(cCo float64) float64 {
		cCt := p.CounterIonConcentration(cCo, cFix)
		return math.Pow(cCo, nuCo)*math.Pow(cCt, nuCt) - rhs
	}

	res, err := s.FindRoot(f, 0, 2*nuCo*cBulk, p, map[string]string{
		"c_bulk": formatFloat(cBulk),
		"c_fix":  formatFloat(cFix),
	})
	if err != nil {
		return Partition{}, err
	}

	return Partition{
		CoIon:      res.Root,
		CounterIon: p.CounterIonConcentration(res.Root, cFix),
		Method:     MethodNumeric,
		Iterations: res.Iterations,
	}, nil
}

// FindRoot expands [lo, hi] until it brackets a root of f, then runs Brent.
// Failures are returned as ErrCodeConvergenceFailure carrying details and
// the final bracket.
func (s Solver) FindRoot(f rootfind.Func, lo, hi float64, p Params, details map[string]string) (rootfind.Result, error) {
	withBracket := func(hi float64) map[string]string {
		d := make(map[string]string, len(details)+2)
		for k, v := range details {
			d[k] = v
		}
		d["bracket_lo"] = formatFloat(lo)
		d["bracket_hi"] = formatFloat(hi)
		return d
	}

	hi, err := rootfind.ExpandUpper(f, lo, hi, 0)
	if err != nil {
		return rootfind.Result{}, NewConvergenceError(p, withBracket(hi), err)
	}

	res, err := rootfind.Brent(f, lo, hi, rootfind.Options{
		XTol:          s.XTol,
		MaxIterations: s.MaxIterations,
	})
	if err != nil {
		return res, NewConvergenceError(p, withBracket(hi), err)
	}
	if res.Root < 0 {
		return res, NewConvergenceError(p, withBracket(hi),
			fmt.Errorf("negative co-ion concentration %g", res.Root))
	}
	return res, nil
}

// ValidateInputs checks p and then the concentrations.
func ValidateInputs(cBulk, cFix float64, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !(cBulk > 0) || math.IsInf(cBulk, 0) {
		return newArgumentError(p, "c_bulk > 0",
			fmt.Sprintf("bulk concentration must be positive and finite, got %g", cBulk))
	}
	if !(cFix >= 0) || math.IsInf(cFix, 0) {
		return newArgumentError(p, "c_fix >= 0",
			fmt.Sprintf("fixed charge concentration must be non-negative and finite, got %g", cFix))
	}
	return nil
}

func formatFloat(x float64) string {
	return fmt.Sprintf("%g", x)
}
