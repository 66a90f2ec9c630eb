// Package diffusion estimates membrane-phase diffusion coefficients from
// bulk solution values and membrane structure.
package diffusion
