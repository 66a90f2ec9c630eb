package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/memtk/internal/batch"
	"github.com/roach88/memtk/internal/library"
)

// calcResult renders a single evaluated case.
type calcResult struct {
	batch.Result
}

func (r calcResult) WriteText(w io.Writer) error {
	for _, k := range r.OutputNames() {
		q := r.Outputs[k]
		if _, err := fmt.Fprintf(w, "%-16s %s %s\n", k, batch.FormatMagnitude(q.Magnitude), q.Units); err != nil {
			return err
		}
	}
	if r.Method != "" {
		if _, err := fmt.Fprintf(w, "%-16s %s\n", "method", r.Method); err != nil {
			return err
		}
	}
	if r.Membrane != "" {
		if _, err := fmt.Fprintf(w, "%-16s %s\n", "membrane", r.Membrane); err != nil {
			return err
		}
	}
	return nil
}

// caseExitCode separates bad input (command errors) from calculations that
// ran and failed.
func caseExitCode(code string) int {
	switch code {
	case batch.CodeMissingInput, batch.CodeInvalidQuantity, batch.CodeIncompatibleUnits, batch.CodeUnknownMembrane:
		return ExitCommandError
	default:
		return ExitFailure
	}
}

// runner builds a batch runner from the loaded configuration.
func (o *RootOptions) runner(lib *library.Library) *batch.Runner {
	cfg := o.settings()
	return &batch.Runner{
		Workers:         cfg.Batch.Workers,
		Solver:          cfg.Solver.Solver(),
		Library:         lib,
		Temperature:     cfg.Physics.Temperature,
		TransportNumber: &cfg.Physics.TransportNumber,
		Logger:          o.logger(),
	}
}

// loadLibrary loads dir, or the configured library when dir is empty.
// It returns nil without error when neither is set.
func (o *RootOptions) loadLibrary(dir string, formatter *OutputFormatter) (*library.Library, error) {
	if dir == "" {
		dir = o.settings().Library.Dir
	}
	if dir == "" {
		return nil, nil
	}

	lib, errs := library.Load(dir, library.LoadModeFailFast)
	if len(errs) > 0 {
		var loadErr *library.LoadError
		if errors.As(errs[0], &loadErr) {
			return nil, formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Error(), nil)
		}
		return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, errs[0].Error(), nil)
	}
	formatter.VerboseLog("Loaded %d membrane(s) from %s", len(lib.Membranes), dir)
	return lib, nil
}

// runCase evaluates one case and reports it.
func (o *RootOptions) runCase(cmd *cobra.Command, c batch.Case, libDir string) error {
	formatter := o.formatter(cmd)

	var lib *library.Library
	if c.Membrane != "" {
		var err error
		if lib, err = o.loadLibrary(libDir, formatter); err != nil {
			return err
		}
	}

	res := o.runner(lib).Evaluate(c)
	if !res.OK() {
		return formatter.Fail(caseExitCode(res.ErrorCode), res.ErrorCode, res.Error, nil)
	}
	return formatter.Success(calcResult{res})
}

// setInput records a quantity flag when it was given.
func setInput(inputs map[string]string, key, value string) {
	if value != "" {
		inputs[key] = value
	}
}

// changedInt returns a pointer to v when the flag was set.
func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
