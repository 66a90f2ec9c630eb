// Package library loads membrane presets from CUE files.
//
// A library directory holds one CUE package whose top-level "membrane"
// struct maps preset names to property sets:
//
//	package membranes
//
//	membrane: CR61: {
//		description:           "Suez CR61 cation exchange membrane"
//		fixed_charge:          "3.21 mol/L"
//		z_fix:                 -1
//		manning_xi:            1.83
//		water_volume_fraction: 0.32
//	}
//
// Each entry is unified with the closed #Membrane schema, so unknown fields
// and out-of-range values fail at load time with a CUE position. Quantities
// are strings parsed by package units. When fixed_charge is absent it is
// derived from iec and swelling_degree.
package library
