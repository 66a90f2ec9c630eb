package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/memtk/internal/batch"
	"github.com/roach88/memtk/internal/library"
)

// membraneList is the result of the membranes command.
type membraneList struct {
	Count     int               `json:"count"`
	Membranes []membraneSummary `json:"membranes"`
}

type membraneSummary struct {
	library.Membrane

	// Xi is manning_xi, or its estimate from the fixed charge when unset.
	Xi          float64 `json:"xi"`
	XiEstimated bool    `json:"xi_estimated,omitempty"`
}

const membraneRow = "%-8s %-14s %-6s %-14s %s\n"

func (l membraneList) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d membrane(s)\n\n", l.Count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, membraneRow, "NAME", "FIXED CHARGE", "Z_FIX", "XI", "DESCRIPTION"); err != nil {
		return err
	}
	for _, m := range l.Membranes {
		xi := batch.FormatMagnitude(m.Xi)
		if m.XiEstimated {
			xi += " (est)"
		}
		charge := batch.FormatMagnitude(m.FixedCharge.Magnitude) + " " + m.FixedCharge.Units
		if _, err := fmt.Fprintf(w, membraneRow, m.Name, charge, strconv.Itoa(m.ZFix), xi, m.Description); err != nil {
			return err
		}
	}
	return nil
}

// NewMembranesCommand creates the membranes command.
func NewMembranesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "membranes [library-dir]",
		Short: "List membrane presets in a CUE library",
		Long: `Load and validate a directory of CUE membrane presets and list them.

Each preset lives under "membrane: <name>:" and gives its fixed charge
directly or through iec and swelling_degree. The directory defaults to the
configured library.dir.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			}
			return runMembranes(rootOpts, dir, cmd)
		},
	}

	return cmd
}

func runMembranes(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	lib, err := opts.loadLibrary(dir, formatter)
	if err != nil {
		return err
	}
	if lib == nil {
		return formatter.Fail(ExitCommandError, library.ErrCodeNotFound, "no library directory given and library.dir is not configured", nil)
	}

	temperature := opts.settings().Physics.Temperature
	list := membraneList{Count: len(lib.Membranes)}
	for _, name := range lib.Names() {
		m, _ := lib.Get(name)
		xi, err := m.Xi(temperature)
		if err != nil {
			return formatter.Fail(ExitCommandError, library.ErrCodeInvalidMembrane, err.Error(), nil)
		}
		list.Membranes = append(list.Membranes, membraneSummary{
			Membrane:    m,
			Xi:          xi,
			XiEstimated: m.ManningXi == nil,
		})
	}
	return formatter.Success(list)
}
