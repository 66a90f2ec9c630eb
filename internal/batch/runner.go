package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/memtk/internal/donnan"
	"github.com/roach88/memtk/internal/library"
	"github.com/roach88/memtk/internal/manning"
	"github.com/roach88/memtk/internal/potential"
	"github.com/roach88/memtk/internal/unitized"
	"github.com/roach88/memtk/internal/units"
)

// Error codes recorded on failed results that do not carry their own.
const (
	CodeMissingInput      = "MISSING_INPUT"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeIncompatibleUnits = "INCOMPATIBLE_UNITS"
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeUnknownMembrane   = "UNKNOWN_MEMBRANE"
	CodeInternal          = "INTERNAL"
)

// DefaultWorkers is used when neither the runner nor the file sets a count.
const DefaultWorkers = 4

// Runner evaluates batch files.
type Runner struct {
	// Workers bounds concurrent cases. File.Workers overrides it when set.
	Workers int

	Solver donnan.Solver

	// Library resolves Case.Membrane. Cases naming a membrane fail when nil.
	Library *library.Library

	// Temperature (K) for Nernst cases without a temperature input and for
	// estimating the Manning parameter of membranes that do not set one.
	Temperature float64

	// TransportNumber is the default t_counter for permselectivity. Nil means
	// potential.DefaultTransportNumber; zero is a valid transport number.
	TransportNumber *float64

	Logger *slog.Logger

	// IDs generates run IDs when the file does not fix one.
	IDs IDGenerator
}

// Result is the outcome of one case.
type Result struct {
	Name        string                    `json:"name"`
	Calculation string                    `json:"calculation"`
	Membrane    string                    `json:"membrane,omitempty"`
	Outputs     map[string]units.Quantity `json:"outputs,omitempty"`
	Method      donnan.Method             `json:"method,omitempty"`
	Iterations  int                       `json:"iterations,omitempty"`
	ErrorCode   string                    `json:"error_code,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

// OK reports whether the case succeeded.
func (r Result) OK() bool {
	return r.Error == ""
}

// Run evaluates every case of f. Results are in file order. Calculation
// failures are recorded per case; only context cancellation fails the run.
func (r *Runner) Run(ctx context.Context, f *File) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := f.RunID
	if runID == "" {
		ids := r.IDs
		if ids == nil {
			ids = UUIDv7Generator{}
		}
		runID = ids.Generate()
	}
	workers := r.Workers
	if f.Workers > 0 {
		workers = f.Workers
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	logger = logger.With("batch", f.Name, "run_id", runID)
	logger.Info("batch started", "cases", len(f.Cases), "workers", workers)
	start := time.Now()

	results := make([]Result, len(f.Cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range f.Cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := r.Evaluate(c)
			if res.OK() {
				logger.Debug("case done", "case", c.Name, "calculation", c.Calculation)
			} else {
				logger.Warn("case failed", "case", c.Name, "code", res.ErrorCode, "error", res.Error)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", f.Name, err)
	}

	report := &Report{Name: f.Name, RunID: runID, Results: results}
	for _, res := range results {
		if !res.OK() {
			report.Failed++
		}
	}
	logger.Info("batch finished", "failed", report.Failed, "elapsed", time.Since(start))
	return report, nil
}

// Evaluate runs a single case. Failures are recorded on the Result.
func (r *Runner) Evaluate(c Case) Result {
	res := Result{Name: c.Name, Calculation: c.Calculation, Membrane: c.Membrane}

	in := inputs{name: c.Name, raw: c.Inputs}
	var err error
	switch c.Calculation {
	case CalcDonnan, CalcDonnanManning:
		err = r.donnan(c, in, &res)
	case CalcNernst:
		err = r.nernst(c, in, &res)
	case CalcPermselectivity:
		err = r.permselectivity(in, &res)
	default:
		err = fmt.Errorf("unknown calculation %q", c.Calculation)
	}
	if err != nil {
		res.Outputs = nil
		res.Method = ""
		res.Iterations = 0
		res.ErrorCode = errorCode(err)
		res.Error = err.Error()
	}
	return res
}

func (r *Runner) donnan(c Case, in inputs, res *Result) error {
	p := c.Ions.Params()
	cBulk, err := in.required("c_bulk")
	if err != nil {
		return err
	}

	var m *library.Membrane
	if c.Membrane != "" {
		if r.Library == nil {
			return &library.LoadError{Code: library.ErrCodeUnknownMembrane, Message: fmt.Sprintf("membrane %q requested but no library loaded", c.Membrane)}
		}
		got, err := r.Library.Get(c.Membrane)
		if err != nil {
			return err
		}
		m = &got
		if c.Ions == nil || c.Ions.ZFix == nil {
			p = m.Apply(p)
		}
		if !c.Ions.chargesSet() {
			p = library.MatchCounterIon(p)
		}
	}

	cFix, err := in.optional("c_fix")
	if err != nil {
		return err
	}
	if cFix == nil {
		if m == nil {
			return missingInput(c.Name, "c_fix")
		}
		cFix = &m.FixedCharge
	}

	if c.Calculation == CalcDonnan {
		part, err := unitized.DonnanPartitionWith(r.Solver, cBulk, *cFix, p)
		if err != nil {
			return err
		}
		res.setPartition(part)
		return nil
	}

	xi, err := in.optional("xi")
	if err != nil {
		return err
	}
	if xi == nil {
		if m == nil {
			return missingInput(c.Name, "xi")
		}
		v, err := m.Xi(r.temperature())
		if err != nil {
			return err
		}
		q := units.New(v, unitized.Dimensionless)
		xi = &q
	}

	part, err := unitized.ManningEquilibriumWith(r.Solver, cBulk, *cFix, *xi, p)
	if err != nil {
		return err
	}
	res.setPartition(part)
	return nil
}

func (r *Runner) nernst(c Case, in inputs, res *Result) error {
	cHigh, err := in.required("c_high")
	if err != nil {
		return err
	}
	cLow, err := in.required("c_low")
	if err != nil {
		return err
	}
	temp, err := in.optional("temperature")
	if err != nil {
		return err
	}
	opts := unitized.DefaultNernstOptions()
	opts.Z = c.Ions.Params().ZCounter
	opts.Temperature = units.New(r.temperature(), unitized.Temperature)
	if temp != nil {
		opts.Temperature = *temp
	}
	e, err := unitized.Nernst(cHigh, cLow, opts)
	if err != nil {
		return err
	}
	res.Outputs = map[string]units.Quantity{"potential": e}
	return nil
}

func (r *Runner) permselectivity(in inputs, res *Result) error {
	eMem, err := in.required("e_mem")
	if err != nil {
		return err
	}
	eIdeal, err := in.required("e_ideal")
	if err != nil {
		return err
	}
	t, err := in.optional("t_counter")
	if err != nil {
		return err
	}
	tCounter := units.New(r.transportNumber(), unitized.Dimensionless)
	if t != nil {
		tCounter = *t
	}
	p, err := unitized.ApparentPermselectivity(eMem, eIdeal, tCounter)
	if err != nil {
		return err
	}
	res.Outputs = map[string]units.Quantity{"permselectivity": p}
	return nil
}

func (r *Runner) temperature() float64 {
	if r.Temperature > 0 {
		return r.Temperature
	}
	return potential.RoomTemperature
}

func (r *Runner) transportNumber() float64 {
	if r.TransportNumber != nil {
		return *r.TransportNumber
	}
	return potential.DefaultTransportNumber
}

func (res *Result) setPartition(part unitized.Partition) {
	res.Outputs = map[string]units.Quantity{
		"co_ion":      part.CoIon,
		"counter_ion": part.CounterIon,
	}
	if part.MeanActivity != nil {
		res.Outputs["mean_activity"] = units.New(*part.MeanActivity, unitized.Dimensionless)
	}
	res.Method = part.Method
	res.Iterations = part.Iterations
}

// inputs parses a case's quantity strings on demand.
type inputs struct {
	name string
	raw  map[string]string
}

func (in inputs) optional(key string) (*units.Quantity, error) {
	s, ok := in.raw[key]
	if !ok {
		return nil, nil
	}
	q, err := units.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("case %s: %s: %w", in.name, key, err)
	}
	return &q, nil
}

func (in inputs) required(key string) (units.Quantity, error) {
	q, err := in.optional(key)
	if err != nil {
		return units.Quantity{}, err
	}
	if q == nil {
		return units.Quantity{}, missingInput(in.name, key)
	}
	return *q, nil
}

type missingInputError struct {
	caseName, key string
}

func (e *missingInputError) Error() string {
	return fmt.Sprintf("case %s: missing input %q", e.caseName, e.key)
}

func missingInput(caseName, key string) error {
	return &missingInputError{caseName: caseName, key: key}
}

// errorCode maps a calculation error to the code recorded on its Result.
func errorCode(err error) string {
	var de *donnan.Error
	if errors.As(err, &de) {
		return string(de.Code)
	}
	var le *library.LoadError
	if errors.As(err, &le) {
		if le.Code == library.ErrCodeUnknownMembrane {
			return CodeUnknownMembrane
		}
		return le.Code
	}
	var mi *missingInputError
	switch {
	case errors.As(err, &mi):
		return CodeMissingInput
	case units.IsIncompatible(err):
		return CodeIncompatibleUnits
	case units.IsParseError(err):
		return CodeInvalidQuantity
	case errors.Is(err, manning.ErrInvalidStoichiometry):
		return string(donnan.ErrCodeInvalidStoichiometry)
	case errors.Is(err, manning.ErrInvalidArgument),
		errors.Is(err, manning.ErrSignMismatch),
		errors.Is(err, potential.ErrInvalidArgument):
		return CodeInvalidArgument
	}
	return CodeInternal
}

// OutputNames returns the output names of r in sorted order.
func (r Result) OutputNames() []string {
	keys := make([]string, 0, len(r.Outputs))
	for k := range r.Outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
