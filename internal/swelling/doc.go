// Package swelling converts water uptake measurements into the structural
// quantities used by the transport models: water volume fraction, fixed
// charge concentration, water partition coefficient and the Flory-Huggins
// interaction parameter.
//
// Swelling degree SD is grams of sorbed water per gram of dry polymer.
package swelling
