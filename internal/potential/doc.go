// Package potential computes membrane potentials and permselectivity from
// measured or ideal potentials.
//
// Concentrations may be in any consistent unit since only their ratio
// matters. Potentials are in volts and temperatures in kelvin.
package potential
