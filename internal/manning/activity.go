package manning

import (
	"fmt"
	"math"
)

// ActivityCoefficient returns a membrane-phase ion activity coefficient.
//
// cFix is the signed fixed charge concentration and cs the mobile salt
// concentration, both in mol per L of sorbed water. For xi >= 1/|z_ct|:
//
//	gamma_ct = (X/(xi|z_ct|) + nu_ct|z_ct|) / (X + nu_ct|z_ct|) * exp(-(X/2) / (X + xi|z_co z_ct|(nu_co+nu_ct)))
//	gamma_co = exp(-(X/2 * (z_co/z_ct)^2) / (X + xi|z_co z_ct|(nu_co+nu_ct)))
//
// and below the critical value both are exp(-(xi X/2) z^2 / (X|z_ct| + nu_ct z_ct^2 + nu_co z_co^2)).
// Mean returns (gamma_ct^nu_ct * gamma_co^nu_co)^(1/(nu_ct+nu_co)).
func ActivityCoefficient(xi, cFix, cs float64, kind Kind, ions Ions) (float64, error) {
	if err := ions.check(cFix); err != nil {
		return 0, err
	}
	if err := checkXiAndSalt(xi, cs); err != nil {
		return 0, err
	}

	gCt, gCo := coefficients(xi, math.Abs(cFix/cs), ions)
	switch kind {
	case Counter:
		return gCt, nil
	case Co:
		return gCo, nil
	case Mean:
		return meanOf(gCt, gCo, ions), nil
	default:
		return 0, fmt.Errorf("%w %q: enter 'counter', 'co', or 'mean'", ErrInvalidKind, kind)
	}
}

// coefficients evaluates both branches of the activity model for a given X.
func coefficients(xi, x float64, ions Ions) (gCt, gCo float64) {
	zCt, zCo := float64(ions.ZCounter), float64(ions.ZCo)
	nuCt, nuCo := float64(ions.NuCounter), float64(ions.NuCo)
	azCt := math.Abs(zCt)

	if xi >= ions.CriticalXi() {
		denom := x + math.Abs(zCo*zCt)*xi*(nuCo+nuCt)
		gCt = ((x/azCt/xi + azCt*nuCt) / (x + azCt*nuCt)) * math.Exp(-(x/2)/denom)
		ratio := zCo / zCt
		gCo = math.Exp(-(x / 2 * ratio * ratio) / denom)
		return gCt, gCo
	}

	common := -(xi * x / 2) / (x*azCt + (nuCt*zCt*zCt + nuCo*zCo*zCo))
	return math.Exp(common * zCt * zCt), math.Exp(common * zCo * zCo)
}

func meanOf(gCt, gCo float64, ions Ions) float64 {
	nuCt, nuCo := float64(ions.NuCounter), float64(ions.NuCo)
	return math.Pow(math.Pow(gCt, nuCt)*math.Pow(gCo, nuCo), 1/(nuCt+nuCo))
}

func checkXiAndSalt(xi, cs float64) error {
	if !(xi >= 0) || math.IsInf(xi, 0) {
		return fmt.Errorf("%w: Manning parameter must be non-negative and finite, got %g", ErrInvalidArgument, xi)
	}
	if !(cs > 0) || math.IsInf(cs, 0) {
		return fmt.Errorf("%w: mobile salt concentration must be positive and finite, got %g", ErrInvalidArgument, cs)
	}
	return nil
}
