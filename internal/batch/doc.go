// Package batch evaluates a YAML file of calculation cases concurrently.
//
// A batch file names a run and lists cases. Each case picks a calculation
// (donnan, donnan_manning, nernst, permselectivity), gives its inputs as
// quantity strings such as "500 mmol/L", and may reference a membrane preset
// from a library for the fixed charge, fixed-charge valence and Manning
// parameter.
//
// Files are decoded strictly: unknown keys are errors. Cases run on a bounded
// worker pool; results come back in file order. A failed calculation is
// recorded on its Result and does not stop the run. Cancelling the context
// does.
package batch
