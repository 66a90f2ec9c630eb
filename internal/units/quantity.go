package units

import (
	"strconv"
	"strings"
)

// Quantity is a magnitude tagged with a unit expression. Empty Units means
// the quantity is untagged and assumed to already be in whatever unit the
// consumer expects.
type Quantity struct {
	Magnitude float64 `json:"magnitude"`
	Units     string  `json:"units,omitempty"`
}

// New returns a tagged quantity.
func New(magnitude float64, units string) Quantity {
	return Quantity{Magnitude: magnitude, Units: units}
}

// Untagged returns a quantity with no units.
func Untagged(magnitude float64) Quantity {
	return Quantity{Magnitude: magnitude}
}

// IsTagged reports whether q carries units.
func (q Quantity) IsTagged() bool {
	return q.Units != ""
}

// String renders q as "<magnitude> <units>".
func (q Quantity) String() string {
	m := strconv.FormatFloat(q.Magnitude, 'g', -1, 64)
	if !q.IsTagged() {
		return m
	}
	return m + " " + q.Units
}

// To converts q into target units using DefaultRegistry.
func (q Quantity) To(target string) (Quantity, error) {
	return DefaultRegistry.ConvertQuantity(q, target)
}

// Parse reads a quantity such as "500 mmol/L", "500mmol/L" or "0.5" using
// DefaultRegistry.
func Parse(s string) (Quantity, error) {
	return DefaultRegistry.Parse(s)
}

// MustParse is like Parse but panics on error. For constants and tests.
func MustParse(s string) Quantity {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

// Parse reads a quantity. A bare number yields an untagged quantity.
func (r *Registry) Parse(s string) (Quantity, error) {
	in := normalize(s)
	n := scanNumber(in)
	if n == 0 {
		return Quantity{}, &ParseError{Input: in, Msg: "missing magnitude"}
	}
	mag, err := strconv.ParseFloat(in[:n], 64)
	if err != nil {
		return Quantity{}, &ParseError{Input: in, Msg: "invalid magnitude " + strconv.Quote(in[:n])}
	}

	units := strings.TrimSpace(in[n:])
	if units == "" {
		return Untagged(mag), nil
	}
	if _, err := r.ParseUnit(units); err != nil {
		return Quantity{}, err
	}
	return New(mag, units), nil
}

// ConvertQuantity converts q into target units. An untagged q is re-tagged
// without changing its magnitude.
func (r *Registry) ConvertQuantity(q Quantity, target string) (Quantity, error) {
	if !q.IsTagged() {
		if _, err := r.ParseUnit(target); err != nil {
			return Quantity{}, err
		}
		return New(q.Magnitude, target), nil
	}
	v, err := r.Convert(q.Magnitude, q.Units, target)
	if err != nil {
		return Quantity{}, err
	}
	return New(v, target), nil
}
