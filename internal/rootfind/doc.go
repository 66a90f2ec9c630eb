// Package rootfind locates roots of continuous scalar functions.
//
// The only method is Brent's: inverse quadratic interpolation and secant
// steps safeguarded by bisection, so each iteration keeps a valid sign-change
// bracket. Callers that only know a lower bound use ExpandUpper to grow the
// bracket before calling Brent.
//
// Every search has a fixed iteration budget. Exhausting it, failing to
// bracket, or evaluating to NaN/Inf returns an error wrapping one of the
// sentinel errors below; results are never returned half-converged.
package rootfind
