package unitized

import (
	"fmt"

	"github.com/roach88/memtk/internal/donnan"
	"github.com/roach88/memtk/internal/units"
)

// Canonical units of each parameter kind.
const (
	Concentration = "mol/L"
	Potential     = "V"
	Diffusivity   = "m**2/s"
	Temperature   = "K"
	Dimensionless = "dimensionless"
	IEC           = "meq/g"
	Density       = "g/cm**3"
)

// Partition is a membrane composition with tagged concentrations.
type Partition struct {
	CoIon        units.Quantity `json:"co_ion"`
	CounterIon   units.Quantity `json:"counter_ion"`
	Method       donnan.Method  `json:"method"`
	Iterations   int            `json:"iterations,omitempty"`
	MeanActivity *float64       `json:"mean_activity,omitempty"`
}

func canonical(name string, q units.Quantity, unit string) (float64, error) {
	if !q.IsTagged() {
		return q.Magnitude, nil
	}
	c, err := q.To(unit)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return c.Magnitude, nil
}

// arg is one quantity parameter and the unit the numeric code expects.
type arg struct {
	name string
	q    units.Quantity
	unit string
}

// convert returns the canonical magnitudes of args in order.
func convert(args ...arg) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := canonical(a.name, a.q, a.unit)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func partition(p donnan.Partition) Partition {
	return Partition{
		CoIon:      units.New(p.CoIon, Concentration),
		CounterIon: units.New(p.CounterIon, Concentration),
		Method:     p.Method,
		Iterations: p.Iterations,
	}
}
