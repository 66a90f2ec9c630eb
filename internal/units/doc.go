// Package units parses and converts physical quantities such as
// "500 mmol/L" or "1e-9 m**2/s".
//
// A unit expression is a product of symbols joined by '*', '/' or spaces,
// each optionally raised to an integer power with '**' or '^'. Symbols may
// carry an SI prefix ("mmol", "µm", "kPa"). Parentheses group terms, so
// "J/(mol*K)" and "J/mol/K" are equivalent. Input is NFKC-normalized, so the
// micro sign and Greek mu are the same prefix and "m²" reads as "m**2".
//
// Temperature offsets are honored only when degC is the entire expression;
// inside a compound unit degC is a temperature difference.
//
// Registries are immutable after construction and safe for concurrent use.
package units
