package donnan

import (
	"fmt"
	"math"
)

// Params describes the salt and the membrane fixed charge.
//
// The zero value is not valid; start from DefaultParams or NewParams.
type Params struct {
	// ZCounter is the signed valence of the counter-ion. Default +1.
	ZCounter int `json:"z_counter"`

	// ZCo is the signed valence of the co-ion. Default -1.
	ZCo int `json:"z_co"`

	// NuCounter is the stoichiometric coefficient of the counter-ion. Default 1.
	NuCounter int `json:"nu_counter"`

	// NuCo is the stoichiometric coefficient of the co-ion. Default 1.
	NuCo int `json:"nu_co"`

	// ZFix is the signed valence of the fixed charge groups. Default -1.
	ZFix int `json:"z_fix"`

	// Gamma is the stoichiometrically weighted ratio of the salt activity
	// coefficient in solution to that in the membrane. Default 1.
	Gamma float64 `json:"gamma"`
}

// DefaultParams returns a 1:1 salt in a cation exchange membrane with ideal
// activity (Gamma = 1).
func DefaultParams() Params {
	return Params{
		ZCounter:  1,
		ZCo:       -1,
		NuCounter: 1,
		NuCo:      1,
		ZFix:      -1,
		Gamma:     1,
	}
}

// Option modifies Params in NewParams.
type Option func(*Params)

// WithCounterIon sets the counter-ion valence and stoichiometric coefficient.
func WithCounterIon(z, nu int) Option {
	return func(p *Params) {
		p.ZCounter = z
		p.NuCounter = nu
	}
}

// WithCoIon sets the co-ion valence and stoichiometric coefficient.
func WithCoIon(z, nu int) Option {
	return func(p *Params) {
		p.ZCo = z
		p.NuCo = nu
	}
}

// WithFixedChargeValence sets the valence of the fixed charge groups.
func WithFixedChargeValence(z int) Option {
	return func(p *Params) {
		p.ZFix = z
	}
}

// WithGamma sets the activity coefficient ratio.
func WithGamma(gamma float64) Option {
	return func(p *Params) {
		p.Gamma = gamma
	}
}

// NewParams applies opts over DefaultParams and validates the result.
func NewParams(opts ...Option) (Params, error) {
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the stoichiometry invariants in order, then Gamma.
func (p Params) Validate() error {
	if p.NuCounter <= 0 {
		return newStoichiometryError(p, "nu_counter > 0",
			fmt.Sprintf("counter-ion stoichiometric coefficient must be positive, got %d", p.NuCounter))
	}
	if p.NuCo <= 0 {
		return newStoichiometryError(p, "nu_co > 0",
			fmt.Sprintf("co-ion stoichiometric coefficient must be positive, got %d", p.NuCo))
	}
	if p.NuCounter*p.ZCounter != -p.NuCo*p.ZCo {
		return newStoichiometryError(p, "nu_counter*z_counter == -nu_co*z_co",
			fmt.Sprintf("salt is not electroneutral: %d*%d != -(%d*%d)", p.NuCounter, p.ZCounter, p.NuCo, p.ZCo))
	}
	if p.ZFix*p.ZCounter >= 0 {
		return newStoichiometryError(p, "z_fix*z_counter < 0",
			fmt.Sprintf("fixed charge (z=%d) and counter-ion (z=%d) must have opposite signs", p.ZFix, p.ZCounter))
	}
	if !(p.Gamma > 0) || math.IsInf(p.Gamma, 0) {
		return newArgumentError(p, "gamma > 0",
			fmt.Sprintf("activity coefficient ratio must be positive and finite, got %g", p.Gamma))
	}
	return nil
}

// IsMonovalentIdeal reports whether p is the 1:1, Gamma = 1 case that has a
// closed-form solution.
func (p Params) IsMonovalentIdeal() bool {
	return p.NuCounter == 1 && p.NuCo == 1 &&
		abs(p.ZCounter) == 1 && abs(p.ZCo) == 1 && abs(p.ZFix) == 1 &&
		p.Gamma == 1
}

// CounterIonConcentration back-derives the membrane counter-ion concentration
// from the co-ion concentration by electroneutrality.
func (p Params) CounterIonConcentration(cCo, cFix float64) float64 {
	return -(float64(p.ZCo)*cCo + float64(p.ZFix)*cFix) / float64(p.ZCounter)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
