package rootfind

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxIterations bounds Brent iterations when Options.MaxIterations is zero.
const DefaultMaxIterations = 100

// DefaultMaxExpansions bounds bracket doublings in ExpandUpper.
const DefaultMaxExpansions = 64

const machineEpsilon = 2.220446049250313e-16

var (
	// ErrNoBracket indicates f(a) and f(b) have the same sign.
	ErrNoBracket = errors.New("rootfind: root is not bracketed")

	// ErrNoConvergence indicates the iteration budget ran out.
	ErrNoConvergence = errors.New("rootfind: no convergence within iteration budget")

	// ErrNotFinite indicates the function returned NaN or Inf.
	ErrNotFinite = errors.New("rootfind: function value is not finite")
)

// Func is a scalar function of one variable.
type Func func(x float64) float64

// Options controls a Brent search.
type Options struct {
	// XTol is an absolute tolerance floor on the root. The search always
	// also stops once the bracket is within a few ulps of the estimate, so
	// zero means "as precise as float64 allows".
	XTol float64

	// MaxIterations bounds the search. Zero means DefaultMaxIterations.
	MaxIterations int
}

func (o Options) maxIterations() int {
	if o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}

// Result is a converged root.
type Result struct {
	Root       float64
	Iterations int
	FuncEvals  int
}

// Brent finds a root of f in [a, b]. f(a) and f(b) must differ in sign
// (or one of them must be exactly zero).
func Brent(f Func, a, b float64, opts Options) (Result, error) {
	res := Result{}

	fa, fb := f(a), f(b)
	res.FuncEvals = 2
	if !finite(fa) || !finite(fb) {
		return res, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrNotFinite, a, fa, b, fb)
	}
	if fa == 0 {
		res.Root = a
		return res, nil
	}
	if fb == 0 {
		res.Root = b
		return res, nil
	}
	if sameSign(fa, fb) {
		return res, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrNoBracket, a, fa, b, fb)
	}

	c, fc := b, fb
	var d, e float64
	maxIter := opts.maxIterations()

	for iter := 1; iter <= maxIter; iter++ {
		res.Iterations = iter

		// c must always sit on the opposite side of the root from b.
		if sameSign(fb, fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		// b is the best estimate so far.
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2*machineEpsilon*math.Abs(b) + 0.5*opts.XTol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol || fb == 0 {
			res.Root = b
			return res, nil
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			s := fb / fa
			var p, q float64
			if a == c {
				// secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xm*q - math.Abs(tol*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else {
			b += math.Copysign(tol, xm)
		}
		fb = f(b)
		res.FuncEvals++
		if !finite(fb) {
			return res, fmt.Errorf("%w: f(%g)=%g", ErrNotFinite, b, fb)
		}
	}

	res.Root = b
	return res, fmt.Errorf("%w: %d iterations, last estimate %g", ErrNoConvergence, maxIter, b)
}

// ExpandUpper doubles hi until f(lo) and f(hi) differ in sign and returns the
// new upper bound. hi must be greater than lo.
func ExpandUpper(f Func, lo, hi float64, maxExpansions int) (float64, error) {
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}
	if !(hi > lo) {
		return hi, fmt.Errorf("%w: empty interval [%g, %g]", ErrNoBracket, lo, hi)
	}

	flo := f(lo)
	if !finite(flo) {
		return hi, fmt.Errorf("%w: f(%g)=%g", ErrNotFinite, lo, flo)
	}
	if flo == 0 {
		return hi, nil
	}

	width := hi - lo
	for i := 0; i <= maxExpansions; i++ {
		fhi := f(hi)
		if !finite(fhi) {
			return hi, fmt.Errorf("%w: f(%g)=%g", ErrNotFinite, hi, fhi)
		}
		if !sameSign(flo, fhi) {
			return hi, nil
		}
		width *= 2
		hi = lo + width
	}
	return hi, fmt.Errorf("%w: no sign change up to %g after %d expansions", ErrNoBracket, hi, maxExpansions)
}

func sameSign(x, y float64) bool {
	return (x > 0 && y > 0) || (x < 0 && y < 0)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
