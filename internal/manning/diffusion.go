package manning

import (
	"fmt"
	"math"
)

// latticeTerms truncates the double sum in LatticeSum. Going from 50 to 10000
// terms moves A(1, 5) by about 3e-4.
const latticeTerms = 50

// DiffusionCoefficient returns the membrane-phase ion diffusion coefficient
// normalized by its bulk value (D_mem / D_bulk).
//
// Both ions carry the Mackie-Meares tortuosity factor (phi/(2-phi))^2 and the
// electrostatic term (1 - z^2 A/3). Above the critical xi the counter-ion is
// further slowed by condensation. Only Counter and Co are defined.
func DiffusionCoefficient(xi, cFix, cs, volFrac float64, kind Kind, ions Ions) (float64, error) {
	if err := ions.check(cFix); err != nil {
		return 0, err
	}
	if err := checkXiAndSalt(xi, cs); err != nil {
		return 0, err
	}
	if !(volFrac > 0 && volFrac <= 1) {
		return 0, fmt.Errorf("%w: water volume fraction must be in (0, 1], got %g", ErrInvalidArgument, volFrac)
	}
	if kind != Counter && kind != Co {
		return 0, fmt.Errorf("%w %q: enter 'counter' or 'co'", ErrInvalidKind, kind)
	}
	if xi == 0 {
		return 0, fmt.Errorf("%w: Manning parameter must be positive for diffusion", ErrInvalidArgument)
	}

	x := math.Abs(cFix / cs)
	zCt, zCo := float64(ions.ZCounter), float64(ions.ZCo)
	nuCt := float64(ions.NuCounter)
	azCt := math.Abs(zCt)
	tortuosity := math.Pow(volFrac/(2-volFrac), 2)

	var a, dCt float64
	if xi >= ions.CriticalXi() {
		a = LatticeSum(1/azCt, x/xi/azCt, ions)
		dCt = ((x/(zCt*zCt*nuCt*xi) + 1) / (x/(azCt*nuCt) + 1)) *
			(1 - zCt*zCt*a/3) * tortuosity
	} else {
		a = LatticeSum(xi, x, ions)
		dCt = (1 - zCt*zCt*a/3) * tortuosity
	}

	if kind == Counter {
		return dCt, nil
	}
	return (1 - zCo*zCo*a/3) * tortuosity, nil
}

// LatticeSum evaluates the function A(x, y) of Manning's diffusion theory:
//
//	A = sum_{m1} sum_{m2} [ pi/x (m1^2 + m2^2) + |z_ct| + (nu_ct+nu_co)|z_ct z_co| / y ]^-2
//
// over m1, m2 in [-50, 50) excluding the origin.
func LatticeSum(x, y float64, ions Ions) float64 {
	offset := math.Abs(float64(ions.ZCounter)) +
		float64(ions.NuCounter+ions.NuCo)*math.Abs(float64(ions.ZCounter*ions.ZCo))/y

	var a float64
	for i := -latticeTerms; i < latticeTerms; i++ {
		for j := -latticeTerms; j < latticeTerms; j++ {
			if i == 0 && j == 0 {
				continue
			}
			term := math.Pi/x*float64(i*i+j*j) + offset
			a += 1 / (term * term)
		}
	}
	return a
}

// Beta returns the thermodynamic factor (1 + dln(gamma)/dln(C)) of an ion in
// the membrane. It is only defined in the condensed regime.
//
// cCounter is the membrane counter-ion concentration and cs the mobile salt
// concentration. Only the magnitude of cFix enters the expression.
func Beta(xi, cFix, cCounter, cs float64, kind Kind, ions Ions) (float64, error) {
	if err := ions.check(cFix); err != nil {
		return 0, err
	}
	if err := checkXiAndSalt(xi, cs); err != nil {
		return 0, err
	}
	if xi < ions.CriticalXi() {
		return 0, fmt.Errorf("%w: xi=%g < %g", ErrBelowCritical, xi, ions.CriticalXi())
	}

	f := math.Abs(cFix)
	zCt, zCo := float64(ions.ZCounter), float64(ions.ZCo)
	nuCt, nuCo := float64(ions.NuCounter), float64(ions.NuCo)
	azCt := math.Abs(zCt)
	condensed := f + azCt*nuCt*(nuCt+nuCo)*xi*cs

	switch kind {
	case Counter:
		return 1 +
			f*(1-1/azCt/xi)/(f/azCt/xi+azCt*nuCt*cs) +
			(nuCt+nuCo)*azCt*xi*f*cCounter/(2*condensed*condensed), nil
	case Co:
		ratio := zCo / zCt
		return 1 + 0.5*ratio*ratio*azCt*nuCt*(nuCo+nuCt)*xi*f*cs/(condensed*condensed), nil
	default:
		return 0, fmt.Errorf("%w %q: enter 'counter' or 'co'", ErrInvalidKind, kind)
	}
}
