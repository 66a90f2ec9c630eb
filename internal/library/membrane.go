package library

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/memtk/internal/donnan"
	"github.com/roach88/memtk/internal/manning"
	"github.com/roach88/memtk/internal/swelling"
	"github.com/roach88/memtk/internal/units"
)

// Membrane is a named membrane preset.
type Membrane struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// FixedCharge is the fixed charge per volume of sorbed water, unsigned.
	FixedCharge units.Quantity `json:"fixed_charge"`

	// ZFix is the valence of the fixed groups; its sign marks CEM (-) or AEM (+).
	ZFix int `json:"z_fix"`

	ManningXi           *float64        `json:"manning_xi,omitempty"`
	WaterVolumeFraction *float64        `json:"water_volume_fraction,omitempty"`
	IEC                 *units.Quantity `json:"iec,omitempty"`
	SwellingDegree      *float64        `json:"swelling_degree,omitempty"`
	DielectricConstant  float64         `json:"dielectric_constant"`
	Thickness           *units.Quantity `json:"thickness,omitempty"`
}

// FixedChargeConcentration returns FixedCharge in mol/L.
func (m Membrane) FixedChargeConcentration() (float64, error) {
	q, err := m.FixedCharge.To("mol/L")
	if err != nil {
		return 0, fmt.Errorf("membrane %s: fixed_charge: %w", m.Name, err)
	}
	return q.Magnitude, nil
}

// Xi returns the Manning parameter, estimating it from the fixed charge and
// dielectric constant at temperature (K) when manning_xi is not set.
func (m Membrane) Xi(temperature float64) (float64, error) {
	if m.ManningXi != nil {
		return *m.ManningXi, nil
	}
	cFix, err := m.FixedChargeConcentration()
	if err != nil {
		return 0, err
	}
	xi, err := manning.Parameter(cFix, m.DielectricConstant, temperature)
	if err != nil {
		return 0, fmt.Errorf("membrane %s: %w", m.Name, err)
	}
	return xi, nil
}

// Apply sets the fixed charge valence of p from the membrane.
func (m Membrane) Apply(p donnan.Params) donnan.Params {
	p.ZFix = m.ZFix
	return p
}

// MatchCounterIon negates ZCounter and ZCo when the counter-ion has the same
// sign as p.ZFix, so the default cation counter-ion becomes an anion on an
// anion exchange membrane. Stoichiometry is unchanged.
func MatchCounterIon(p donnan.Params) donnan.Params {
	if p.ZFix*p.ZCounter > 0 {
		p.ZCounter, p.ZCo = -p.ZCounter, -p.ZCo
	}
	return p
}

// CompileError is a problem with one membrane entry.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type membraneFields struct {
	Description         string   `json:"description"`
	FixedCharge         *string  `json:"fixed_charge"`
	ZFix                int      `json:"z_fix"`
	ManningXi           *float64 `json:"manning_xi"`
	WaterVolumeFraction *float64 `json:"water_volume_fraction"`
	IEC                 *string  `json:"iec"`
	SwellingDegree      *float64 `json:"swelling_degree"`
	DielectricConstant  float64  `json:"dielectric_constant"`
	Thickness           *string  `json:"thickness"`
}

// CompileMembrane validates a CUE membrane entry against the schema and
// converts it. The entry name is taken from the last path selector.
func CompileMembrane(v cue.Value) (*Membrane, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema := v.Context().CompileString(membraneSchema)
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	unified := schema.LookupPath(cue.ParsePath("#Membrane")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var raw membraneFields
	if err := unified.Decode(&raw); err != nil {
		return nil, formatCUEError(err)
	}

	m := &Membrane{
		Description:         raw.Description,
		ZFix:                raw.ZFix,
		ManningXi:           raw.ManningXi,
		WaterVolumeFraction: raw.WaterVolumeFraction,
		SwellingDegree:      raw.SwellingDegree,
		DielectricConstant:  raw.DielectricConstant,
	}
	if labels := v.Path().Selectors(); len(labels) > 0 {
		m.Name = labels[len(labels)-1].String()
	}

	var err error
	if raw.IEC != nil {
		q, err := quantity(v, "iec", *raw.IEC, "meq/g")
		if err != nil {
			return nil, err
		}
		m.IEC = &q
	}
	if raw.Thickness != nil {
		q, err := quantity(v, "thickness", *raw.Thickness, "m")
		if err != nil {
			return nil, err
		}
		m.Thickness = &q
	}

	switch {
	case raw.FixedCharge != nil:
		if m.FixedCharge, err = quantity(v, "fixed_charge", *raw.FixedCharge, "mol/L"); err != nil {
			return nil, err
		}
	case m.IEC != nil && m.SwellingDegree != nil:
		iec, _ := m.IEC.To("meq/g")
		cFix, err := swelling.FixedChargeConcentration(iec.Magnitude, *m.SwellingDegree, swelling.WaterDensity)
		if err != nil {
			return nil, &CompileError{Field: "fixed_charge", Message: err.Error(), Pos: v.Pos()}
		}
		m.FixedCharge = units.New(cFix, "mol/L")
	default:
		return nil, &CompileError{
			Field:   "fixed_charge",
			Message: "fixed_charge is required unless iec and swelling_degree are given",
			Pos:     v.Pos(),
		}
	}

	if m.FixedCharge.Magnitude < 0 {
		return nil, &CompileError{
			Field:   "fixed_charge",
			Message: "fixed_charge must be non-negative; the sign comes from z_fix",
			Pos:     fieldPos(v, "fixed_charge"),
		}
	}

	return m, nil
}

// quantity parses a tagged quantity field and checks it converts to want.
func quantity(v cue.Value, field, s, want string) (units.Quantity, error) {
	pos := fieldPos(v, field)
	q, err := units.Parse(s)
	if err != nil {
		return units.Quantity{}, &CompileError{Field: field, Message: err.Error(), Pos: pos}
	}
	if !q.IsTagged() {
		return units.Quantity{}, &CompileError{Field: field, Message: fmt.Sprintf("%q has no units", s), Pos: pos}
	}
	if _, err := q.To(want); err != nil {
		return units.Quantity{}, &CompileError{Field: field, Message: err.Error(), Pos: pos}
	}
	return q, nil
}

func fieldPos(v cue.Value, field string) token.Pos {
	if f := v.LookupPath(cue.ParsePath(field)); f.Exists() {
		return f.Pos()
	}
	return v.Pos()
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
