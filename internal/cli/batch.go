package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/memtk/internal/batch"
)

type batchOptions struct {
	library string
	runID   string
	workers int
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <cases.yaml>",
		Short: "Evaluate a YAML file of calculation cases",
		Long: `Evaluate every case of a batch file concurrently and report the results
in file order.

A failed case does not stop the batch; the command exits with status 1 when
any case failed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.library, "library", "", "membrane library directory (default from config)")
	cmd.Flags().StringVar(&opts.runID, "run-id", "", "fixed run ID (default: a new UUIDv7)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent cases (default from config)")

	return cmd
}

func runBatch(rootOpts *RootOptions, opts *batchOptions, path string, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)

	f, err := batch.LoadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBatchFile, err.Error(), nil)
	}
	if opts.runID != "" {
		f.RunID = opts.runID
	}

	lib, err := rootOpts.loadLibrary(opts.library, formatter)
	if err != nil {
		return err
	}

	runner := rootOpts.runner(lib)
	if opts.workers > 0 {
		runner.Workers = opts.workers
		f.Workers = 0
	}

	report, err := runner.Run(cmd.Context(), f)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	if err := formatter.Success(report); err != nil {
		return err
	}
	if report.Failed > 0 {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%s: %d of %d case(s) failed", ErrCodeCasesFailed, report.Failed, len(report.Results)),
			Reported: formatter.Format == "json",
		}
	}
	return nil
}
