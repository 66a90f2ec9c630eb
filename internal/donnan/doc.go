// Package donnan computes Donnan equilibrium between a charged membrane and a
// bulk salt solution.
//
// Given the bulk salt concentration C_s and the fixed-charge concentration
// C_fix (mol per L of water sorbed, unsigned), the membrane co-ion
// concentration C_co satisfies
//
//	C_co^nu_co * C_ct^nu_ct = Gamma * nu_ct^nu_ct * nu_co^nu_co * C_s^(nu_ct+nu_co)
//
// where the counter-ion concentration follows from electroneutrality inside
// the membrane:
//
//	C_ct = -(z_co*C_co + z_fix*C_fix) / z_ct
//
// The left-hand side is strictly increasing for C_co >= 0, so there is exactly
// one physical root and Brent's method on an expanding bracket finds it.
//
// For a 1:1 salt with Gamma = 1 the closed form
//
//	C_co = C_s * exp(-asinh(C_fix / (2*C_s)))
//
// is used directly. Numeric forces the general path; both agree to float64
// precision.
//
// # Validation
//
// Params are validated before any arithmetic, in this order:
//
//  1. nu_counter > 0
//  2. nu_co > 0
//  3. nu_counter*z_counter == -nu_co*z_co
//  4. z_fix*z_counter < 0
//
// A violation returns an *Error with ErrCodeInvalidStoichiometry naming the
// condition. Non-physical concentrations or Gamma return ErrCodeInvalidArgument.
// A failed root search returns ErrCodeConvergenceFailure. Nothing here is
// retried: the functions are deterministic.
//
// All functions are pure and safe for concurrent use.
package donnan
