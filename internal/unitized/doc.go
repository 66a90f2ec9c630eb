// Package unitized wraps the numeric packages so they accept and return
// units.Quantity values.
//
// Tagged inputs are converted to the canonical unit of their parameter
// before the numeric function runs; untagged inputs (empty Units) pass
// through unchanged and are assumed to be canonical already. Results are
// tagged with the canonical output unit. A dimension mismatch returns a
// *units.IncompatibleError naming the offending parameter.
package unitized
