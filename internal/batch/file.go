package batch

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/roach88/memtk/internal/donnan"
)

// Calculation names.
const (
	CalcDonnan          = "donnan"
	CalcDonnanManning   = "donnan_manning"
	CalcNernst          = "nernst"
	CalcPermselectivity = "permselectivity"
)

// File is a parsed batch file.
type File struct {
	// Name identifies the batch in reports.
	Name string `yaml:"name" validate:"required"`

	// RunID is an optional fixed run ID. When empty the runner generates one.
	RunID string `yaml:"run_id,omitempty"`

	// Workers overrides the runner's worker count when positive.
	Workers int `yaml:"workers,omitempty" validate:"gte=0,lte=256"`

	Cases []Case `yaml:"cases" validate:"required,min=1,dive"`
}

// Case is one calculation.
type Case struct {
	Name        string `yaml:"name" validate:"required"`
	Calculation string `yaml:"calculation" validate:"required,oneof=donnan donnan_manning nernst permselectivity"`

	// Inputs maps parameter names (c_bulk, c_fix, xi, c_high, c_low,
	// temperature, e_mem, e_ideal, t_counter) to quantity strings.
	Inputs map[string]string `yaml:"inputs"`

	Ions *Ions `yaml:"ions,omitempty"`

	// Membrane names a library preset.
	Membrane string `yaml:"membrane,omitempty"`
}

// Ions overrides fields of donnan.DefaultParams. Omitted fields keep their
// defaults.
type Ions struct {
	ZCounter  *int     `yaml:"z_counter,omitempty"`
	ZCo       *int     `yaml:"z_co,omitempty"`
	NuCounter *int     `yaml:"nu_counter,omitempty"`
	NuCo      *int     `yaml:"nu_co,omitempty"`
	ZFix      *int     `yaml:"z_fix,omitempty"`
	Gamma     *float64 `yaml:"gamma,omitempty"`
}

// chargesSet reports whether either ion valence is overridden.
func (i *Ions) chargesSet() bool {
	return i != nil && (i.ZCounter != nil || i.ZCo != nil)
}

// Params applies the overrides to donnan.DefaultParams. Validation is left
// to the solver so errors carry the violated condition.
func (i *Ions) Params() donnan.Params {
	p := donnan.DefaultParams()
	if i == nil {
		return p
	}
	if i.ZCounter != nil {
		p.ZCounter = *i.ZCounter
	}
	if i.ZCo != nil {
		p.ZCo = *i.ZCo
	}
	if i.NuCounter != nil {
		p.NuCounter = *i.NuCounter
	}
	if i.NuCo != nil {
		p.NuCo = *i.NuCo
	}
	if i.ZFix != nil {
		p.ZFix = *i.ZFix
	}
	if i.Gamma != nil {
		p.Gamma = *i.Gamma
	}
	return p
}

// LoadFile reads and validates a batch file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a batch file, rejecting unknown fields.
func Parse(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	if err := checkUniqueNames(f.Cases); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	return &f, nil
}

func checkUniqueNames(cases []Case) error {
	seen := make(map[string]int, len(cases))
	for i, c := range cases {
		if j, ok := seen[c.Name]; ok {
			return fmt.Errorf("case %d: name %q already used by case %d", i, c.Name, j)
		}
		seen[c.Name] = i
	}
	return nil
}
