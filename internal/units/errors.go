package units

import (
	"errors"
	"fmt"
)

// IncompatibleError is returned when a conversion crosses dimensions, e.g.
// g/L to mol/L.
type IncompatibleError struct {
	From    string
	To      string
	FromDim Dimension
	ToDim   Dimension
}

// Error implements the error interface.
func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("units: cannot convert from '%s' (%s) to '%s' (%s)", e.From, e.FromDim, e.To, e.ToDim)
}

// IsIncompatible reports whether err is an IncompatibleError.
func IsIncompatible(err error) bool {
	var ie *IncompatibleError
	return errors.As(err, &ie)
}

// ParseError is returned for malformed quantities or unit expressions.
type ParseError struct {
	// Input is the normalized text being parsed.
	Input string

	// Pos is the byte offset of the failure in Input.
	Pos int

	// Msg describes the failure.
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("units: parse %q at offset %d: %s", e.Input, e.Pos, e.Msg)
}

// IsParseError reports whether err is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
