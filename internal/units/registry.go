package units

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Unit is a resolved unit expression. A magnitude x in this unit is
// x*Factor + Offset in coherent SI units of Dim.
type Unit struct {
	Factor float64
	Offset float64
	Dim    Dimension
}

func (u Unit) mul(o Unit) (Unit, bool) {
	d, ok := u.Dim.mul(o.Dim)
	return Unit{Factor: u.Factor * o.Factor, Dim: d}, ok
}

func (u Unit) pow(n int) (Unit, bool) {
	d, ok := u.Dim.pow(n)
	return Unit{Factor: math.Pow(u.Factor, float64(n)), Dim: d}, ok
}

type definition struct {
	unit       Unit
	prefixable bool
}

// Registry resolves unit symbols. Use DefaultRegistry unless extra symbols
// are needed.
type Registry struct {
	units    map[string]definition
	prefixes map[rune]float64
}

// DefaultRegistry holds the SI prefixes and the symbols used for membrane
// transport work.
var DefaultRegistry = NewRegistry()

func dim(pairs ...int) Dimension {
	var d Dimension
	for i := 0; i+1 < len(pairs); i += 2 {
		d[pairs[i]] = int8(pairs[i+1])
	}
	return d
}

// NewRegistry returns a registry with the default symbol set.
func NewRegistry() *Registry {
	var (
		length      = dim(dimLength, 1)
		mass        = dim(dimMass, 1)
		duration    = dim(dimTime, 1)
		substance   = dim(dimSubstance, 1)
		current     = dim(dimCurrent, 1)
		temperature = dim(dimTemperature, 1)
		volume      = dim(dimLength, 3)
		molarity    = dim(dimSubstance, 1, dimLength, -3)
		energy      = dim(dimMass, 1, dimLength, 2, dimTime, -2)
		pressure    = dim(dimMass, 1, dimLength, -1, dimTime, -2)
		power       = dim(dimMass, 1, dimLength, 2, dimTime, -3)
		potential   = dim(dimMass, 1, dimLength, 2, dimTime, -3, dimCurrent, -1)
		resistance  = dim(dimMass, 1, dimLength, 2, dimTime, -3, dimCurrent, -2)
		conductance = dim(dimMass, -1, dimLength, -2, dimTime, 3, dimCurrent, 2)
	)

	r := &Registry{
		units: make(map[string]definition),
		prefixes: map[rune]float64{
			'p': 1e-12,
			'n': 1e-9,
			'u': 1e-6,
			'μ': 1e-6,
			'm': 1e-3,
			'c': 1e-2,
			'd': 1e-1,
			'k': 1e3,
			'M': 1e6,
			'G': 1e9,
		},
	}

	prefixed := func(factor float64, d Dimension, symbols ...string) {
		for _, s := range symbols {
			r.units[s] = definition{unit: Unit{Factor: factor, Dim: d}, prefixable: true}
		}
	}
	plain := func(factor float64, d Dimension, symbols ...string) {
		for _, s := range symbols {
			r.units[s] = definition{unit: Unit{Factor: factor, Dim: d}}
		}
	}

	prefixed(1, length, "m")
	prefixed(1e-3, mass, "g")
	prefixed(1, duration, "s")
	prefixed(1, substance, "mol", "eq")
	prefixed(1, current, "A")
	prefixed(1, temperature, "K")
	prefixed(1e-3, volume, "L", "l")
	prefixed(1e3, molarity, "M")
	prefixed(1, potential, "V")
	prefixed(1, dim(dimCurrent, 1, dimTime, 1), "C")
	prefixed(1, energy, "J")
	prefixed(1, pressure, "Pa")
	prefixed(1e5, pressure, "bar")
	prefixed(1, power, "W")
	prefixed(1, dim(dimMass, 1, dimLength, 1, dimTime, -2), "N")
	prefixed(1, resistance, "ohm", "Ω")
	prefixed(1, conductance, "S")

	plain(1, length, "meter", "metre")
	plain(1e-3, mass, "gram")
	plain(1, duration, "second")
	plain(60, duration, "min", "minute")
	plain(3600, duration, "h", "hr", "hour")
	plain(1, substance, "mole")
	plain(1e-3, volume, "liter", "litre")
	plain(1e3, molarity, "molar")
	plain(1, potential, "volt")
	plain(1, temperature, "kelvin")
	plain(1, Dimension{}, "dimensionless")
	plain(0.01, Dimension{}, "%", "percent")

	r.units["degC"] = definition{unit: Unit{Factor: 1, Offset: 273.15, Dim: temperature}}
	r.units["celsius"] = r.units["degC"]

	return r
}

// Lookup resolves a single symbol, with or without an SI prefix.
func (r *Registry) Lookup(symbol string) (Unit, error) {
	s := normalize(symbol)
	if def, ok := r.units[s]; ok {
		return def.unit, nil
	}
	p, size := utf8.DecodeRuneInString(s)
	if factor, ok := r.prefixes[p]; ok && size < len(s) {
		if def, ok := r.units[s[size:]]; ok && def.prefixable {
			u := def.unit
			u.Factor *= factor
			return u, nil
		}
	}
	return Unit{}, &ParseError{Input: s, Msg: fmt.Sprintf("unknown unit %q", s)}
}

// ParseUnit resolves a unit expression.
func (r *Registry) ParseUnit(expr string) (Unit, error) {
	s := normalize(expr)
	if s == "" {
		return Unit{}, &ParseError{Input: s, Msg: "empty unit expression"}
	}
	if def, ok := r.units[s]; ok && def.unit.Offset != 0 {
		return def.unit, nil
	}
	p := &parser{reg: r, in: s}
	return p.parse()
}

// Convert converts magnitude x from one unit expression to another.
func (r *Registry) Convert(x float64, from, to string) (float64, error) {
	fu, err := r.ParseUnit(from)
	if err != nil {
		return 0, err
	}
	tu, err := r.ParseUnit(to)
	if err != nil {
		return 0, err
	}
	if fu.Dim != tu.Dim {
		return 0, &IncompatibleError{From: from, To: to, FromDim: fu.Dim, ToDim: tu.Dim}
	}
	return (x*fu.Factor + fu.Offset - tu.Offset) / tu.Factor, nil
}

// Dimension returns the dimension of a unit expression.
func (r *Registry) Dimension(expr string) (Dimension, error) {
	u, err := r.ParseUnit(expr)
	if err != nil {
		return Dimension{}, err
	}
	return u.Dim, nil
}

func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.ReplaceAll(s, "·", "*")
	s = strings.ReplaceAll(s, "⋅", "*")
	return strings.TrimSpace(s)
}
