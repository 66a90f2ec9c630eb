package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/memtk/internal/batch"
)

// NewNernstCommand creates the nernst command.
func NewNernstCommand(rootOpts *RootOptions) *cobra.Command {
	var cHigh, cLow, temperature string
	var z int

	cmd := &cobra.Command{
		Use:   "nernst",
		Short: "Compute the Nernst potential across a membrane",
		Long: `Compute the equilibrium potential of an ion across a membrane separating
two solutions, E = RT/(zF) ln(c_high/c_low).

The temperature defaults to the configured physics.temperature.`,
		Example: `  memtk nernst --c-high 0.5M --c-low "100 mmol/L"
  memtk nernst --c-high 0.5 --c-low 0.1 --z 2 --temperature "25 degC"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := batch.Case{
				Name:        "nernst",
				Calculation: batch.CalcNernst,
				Inputs:      map[string]string{},
				Ions:        &batch.Ions{ZCounter: changedInt(cmd, "z", z)},
			}
			setInput(c.Inputs, "c_high", cHigh)
			setInput(c.Inputs, "c_low", cLow)
			setInput(c.Inputs, "temperature", temperature)
			return rootOpts.runCase(cmd, c, "")
		},
	}

	cmd.Flags().StringVar(&cHigh, "c-high", "", "concentration on the concentrated side (required)")
	cmd.Flags().StringVar(&cLow, "c-low", "", "concentration on the dilute side (required)")
	cmd.Flags().StringVar(&temperature, "temperature", "", "temperature, e.g. 298.15K or \"25 degC\"")
	cmd.Flags().IntVar(&z, "z", 1, "signed ion valence")
	_ = cmd.MarkFlagRequired("c-high")
	_ = cmd.MarkFlagRequired("c-low")

	return cmd
}
