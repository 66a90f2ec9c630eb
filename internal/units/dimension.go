package units

import (
	"math"
	"strconv"
	"strings"
)

// Base dimensions, in the order stored in a Dimension.
const (
	dimLength = iota
	dimMass
	dimTime
	dimSubstance
	dimCurrent
	dimTemperature
	numDimensions
)

var dimensionNames = [numDimensions]string{
	"[length]", "[mass]", "[time]", "[substance]", "[current]", "[temperature]",
}

// Dimension is a vector of exponents over the SI base dimensions.
// The zero value is dimensionless.
type Dimension [numDimensions]int8

// MaxExponent bounds the magnitude of every exponent in a Dimension.
const MaxExponent = math.MaxInt8

// mul adds exponents. ok is false when any exponent leaves
// [-MaxExponent, MaxExponent].
func (d Dimension) mul(o Dimension) (_ Dimension, ok bool) {
	for i := range d {
		e := int(d[i]) + int(o[i])
		if e > MaxExponent || e < -MaxExponent {
			return Dimension{}, false
		}
		d[i] = int8(e)
	}
	return d, true
}

// pow scales exponents by n with the same bound as mul.
func (d Dimension) pow(n int) (_ Dimension, ok bool) {
	if n > MaxExponent || n < -MaxExponent {
		return Dimension{}, false
	}
	for i := range d {
		e := int(d[i]) * n
		if e > MaxExponent || e < -MaxExponent {
			return Dimension{}, false
		}
		d[i] = int8(e)
	}
	return d, true
}

// IsDimensionless reports whether all exponents are zero.
func (d Dimension) IsDimensionless() bool {
	return d == Dimension{}
}

// String renders d as e.g. "[substance] / [length]^3".
func (d Dimension) String() string {
	if d.IsDimensionless() {
		return "dimensionless"
	}
	var num, den []string
	for i, exp := range d {
		switch {
		case exp > 0:
			num = append(num, term(dimensionNames[i], int(exp)))
		case exp < 0:
			den = append(den, term(dimensionNames[i], int(-exp)))
		}
	}
	out := strings.Join(num, " * ")
	if out == "" {
		out = "1"
	}
	if len(den) > 0 {
		out += " / " + strings.Join(den, " / ")
	}
	return out
}

func term(name string, exp int) string {
	if exp == 1 {
		return name
	}
	return name + "^" + strconv.Itoa(exp)
}
