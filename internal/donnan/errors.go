package donnan

import (
	"errors"
	"fmt"
)

// Error is returned by every function in this package.
//
// Callers discriminate failures by Code, via IsInvalidStoichiometry,
// IsInvalidArgument and IsConvergenceFailure, which all use errors.As so
// wrapped errors match too.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Condition is the violated precondition, e.g. "nu_counter > 0".
	// Empty for convergence failures.
	Condition string

	// Params are the stoichiometry parameters of the failed call.
	Params Params

	// Details contains solver diagnostics (bracket, concentrations).
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes donnan errors.
type ErrorCode string

const (
	// ErrCodeInvalidStoichiometry indicates ion valences or stoichiometric
	// coefficients that cannot describe a neutral salt in a charged membrane.
	ErrCodeInvalidStoichiometry ErrorCode = "INVALID_STOICHIOMETRY"

	// ErrCodeInvalidArgument indicates a non-physical concentration or Gamma.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeConvergenceFailure indicates the root finder could not bracket
	// or converge on the co-ion concentration.
	ErrCodeConvergenceFailure ErrorCode = "CONVERGENCE_FAILURE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Condition != "" {
		msg = fmt.Sprintf("%s (violated: %s)", msg, e.Condition)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvalidStoichiometry reports whether err is a stoichiometry violation.
func IsInvalidStoichiometry(err error) bool {
	return hasCode(err, ErrCodeInvalidStoichiometry)
}

// IsInvalidArgument reports whether err is a non-physical argument error.
func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrCodeInvalidArgument)
}

// IsConvergenceFailure reports whether err is a root-finding failure.
func IsConvergenceFailure(err error) bool {
	return hasCode(err, ErrCodeConvergenceFailure)
}

func hasCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

func newStoichiometryError(p Params, condition, message string) *Error {
	return &Error{
		Code:      ErrCodeInvalidStoichiometry,
		Message:   message,
		Condition: condition,
		Params:    p,
	}
}

func newArgumentError(p Params, condition, message string) *Error {
	return &Error{
		Code:      ErrCodeInvalidArgument,
		Message:   message,
		Condition: condition,
		Params:    p,
	}
}

// NewConvergenceError wraps a root-finder failure with the solver inputs.
func NewConvergenceError(p Params, details map[string]string, cause error) *Error {
	return &Error{
		Code:    ErrCodeConvergenceFailure,
		Message: "failed to solve for membrane co-ion concentration",
		Params:  p,
		Details: details,
		Err:     cause,
	}
}
