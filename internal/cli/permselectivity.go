package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/memtk/internal/batch"
)

// NewPermselectivityCommand creates the permselectivity command.
func NewPermselectivityCommand(rootOpts *RootOptions) *cobra.Command {
	var eMem, eIdeal, tCounter string

	cmd := &cobra.Command{
		Use:   "permselectivity",
		Short: "Compute apparent permselectivity from membrane potentials",
		Long: `Compute the apparent permselectivity from a measured membrane potential
and the ideal (Nernst) potential of the same concentration cell.

The counter-ion transport number defaults to physics.transport_number.`,
		Example:       `  memtk permselectivity --e-mem -30mV --e-ideal -40mV`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := batch.Case{
				Name:        "permselectivity",
				Calculation: batch.CalcPermselectivity,
				Inputs:      map[string]string{},
			}
			setInput(c.Inputs, "e_mem", eMem)
			setInput(c.Inputs, "e_ideal", eIdeal)
			setInput(c.Inputs, "t_counter", tCounter)
			return rootOpts.runCase(cmd, c, "")
		},
	}

	cmd.Flags().StringVar(&eMem, "e-mem", "", "measured membrane potential (required)")
	cmd.Flags().StringVar(&eIdeal, "e-ideal", "", "ideal membrane potential (required)")
	cmd.Flags().StringVar(&tCounter, "t-counter", "", "counter-ion transport number in free solution")
	_ = cmd.MarkFlagRequired("e-mem")
	_ = cmd.MarkFlagRequired("e-ideal")

	return cmd
}
