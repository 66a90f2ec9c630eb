package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/memtk/internal/units"
)

// conversion is the result of the convert command.
type conversion struct {
	From units.Quantity `json:"from"`
	To   units.Quantity `json:"to"`
}

func (c conversion) String() string {
	return c.To.String()
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <quantity> <unit>",
		Short: "Convert a quantity to other units",
		Long: `Convert a quantity such as "500 mmol/L" to compatible units.

Unit expressions support prefixes, products, quotients and powers
("m**2/s", "mol/m^3", "cm-3"). Temperatures in degC convert to K.`,
		Example:       `  memtk convert "500 mmol/L" mol/L`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)

			q, err := units.Parse(args[0])
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
			}
			out, err := q.To(args[1])
			if err != nil {
				code := ErrCodeInvalidInput
				if units.IsIncompatible(err) {
					code = "INCOMPATIBLE_UNITS"
				}
				return formatter.Fail(ExitCommandError, code, err.Error(), nil)
			}
			return formatter.Success(conversion{From: q, To: out})
		},
	}

	return cmd
}
