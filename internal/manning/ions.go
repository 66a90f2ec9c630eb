package manning

import (
	"errors"
	"fmt"

	"github.com/roach88/memtk/internal/donnan"
)

var (
	// ErrInvalidArgument indicates a non-physical input.
	ErrInvalidArgument = errors.New("manning: invalid argument")

	// ErrSignMismatch indicates the fixed charge sign disagrees with the ion valences.
	ErrSignMismatch = errors.New("manning: mismatch between signs of fixed charge, counter-ion, and co-ion")

	// ErrInvalidStoichiometry indicates z_counter*nu_counter != -z_co*nu_co.
	ErrInvalidStoichiometry = errors.New("manning: error in input stoichiometry")

	// ErrInvalidKind indicates an unsupported Kind for the requested quantity.
	ErrInvalidKind = errors.New("manning: invalid kind")

	// ErrBelowCritical indicates xi is below the condensation threshold where
	// the quantity is undefined.
	ErrBelowCritical = errors.New("manning: Manning parameter below critical value")
)

// Kind selects which ion a coefficient refers to.
type Kind string

const (
	// Counter selects the counter-ion (opposite charge to the membrane).
	Counter Kind = "counter"
	// Co selects the co-ion (same charge as the membrane).
	Co Kind = "co"
	// Mean selects the stoichiometric mean of counter- and co-ion.
	Mean Kind = "mean"
)

// ParseKind converts "counter", "co" or "mean" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Counter, Co, Mean:
		return k, nil
	default:
		return "", fmt.Errorf("%w %q: enter 'counter', 'co', or 'mean'", ErrInvalidKind, s)
	}
}

// Ions holds the salt valences and stoichiometric coefficients.
type Ions struct {
	ZCounter  int `json:"z_counter"`
	ZCo       int `json:"z_co"`
	NuCounter int `json:"nu_counter"`
	NuCo      int `json:"nu_co"`
}

// DefaultIons is a monovalent 1:1 salt with a cationic counter-ion.
func DefaultIons() Ions {
	return Ions{ZCounter: 1, ZCo: -1, NuCounter: 1, NuCo: 1}
}

// IonsFromParams takes the ion description from Donnan parameters.
func IonsFromParams(p donnan.Params) Ions {
	return Ions{ZCounter: p.ZCounter, ZCo: p.ZCo, NuCounter: p.NuCounter, NuCo: p.NuCo}
}

// CriticalXi is the Manning parameter above which counter-ions condense.
func (ions Ions) CriticalXi() float64 {
	return 1 / float64(iabs(ions.ZCounter))
}

// check validates signs against the signed fixed charge, then stoichiometry.
func (ions Ions) check(cFix float64) error {
	if cFix < 0 {
		if !(ions.ZCounter > 0 && ions.ZCo < 0) {
			return fmt.Errorf("%w: c_fix=%g, z_counter=%d, z_co=%d", ErrSignMismatch, cFix, ions.ZCounter, ions.ZCo)
		}
	} else if !(ions.ZCounter < 0 && ions.ZCo > 0) {
		return fmt.Errorf("%w: c_fix=%g, z_counter=%d, z_co=%d", ErrSignMismatch, cFix, ions.ZCounter, ions.ZCo)
	}
	if ions.NuCounter <= 0 || ions.NuCo <= 0 {
		return fmt.Errorf("%w: nu_counter=%d, nu_co=%d must be positive", ErrInvalidStoichiometry, ions.NuCounter, ions.NuCo)
	}
	if ions.ZCounter*ions.NuCounter != -ions.ZCo*ions.NuCo {
		return fmt.Errorf("%w: z_counter*nu_counter != |z_co*nu_co|", ErrInvalidStoichiometry)
	}
	return nil
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
