// Package manning implements Manning's counter-ion condensation theory for
// ions sorbed in charged polymers.
//
// The Manning parameter xi is the dimensionless linear charge density of the
// polymer. Counter-ions condense onto the backbone when xi >= 1/|z_ct|; the
// activity and diffusion expressions switch branches at that critical value.
// X = |C_fix| / C_s is the ratio of fixed charge to mobile salt in the
// membrane.
//
// C_fix is signed here (negative for cation exchange membranes), unlike the
// unsigned fixed-charge concentration used by package donnan. The sign must
// agree with the ion valences or the functions return ErrSignMismatch.
//
// Equilibrium couples these activity coefficients to the Donnan relation and
// solves for the membrane co-ion concentration self-consistently.
//
// References: Manning, J. Chem. Phys. 51 (1969) 924 and 934; Kamcev, Paul,
// Freeman, Macromolecules 48 (2015) 8011; Kamcev et al., ACS Appl. Mater.
// Interfaces 9 (2017) 4044.
package manning
