package diffusion

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument indicates a non-physical input.
var ErrInvalidArgument = errors.New("diffusion: invalid argument")

// MackieMeares returns the membrane diffusion coefficient predicted by the
// Mackie-Meares obstruction model:
//
//	D_mem = D_bulk * (phi / (2 - phi))^2
//
// where phi is the water volume fraction. The result has the units of dBulk.
func MackieMeares(dBulk, volFrac float64) (float64, error) {
	if !(dBulk >= 0) || math.IsInf(dBulk, 0) {
		return 0, fmt.Errorf("%w: bulk diffusion coefficient must be non-negative and finite, got %g", ErrInvalidArgument, dBulk)
	}
	if !(volFrac > 0 && volFrac <= 1) {
		return 0, fmt.Errorf("%w: water volume fraction must be in (0, 1], got %g", ErrInvalidArgument, volFrac)
	}
	return dBulk * math.Pow(volFrac/(2-volFrac), 2), nil
}
