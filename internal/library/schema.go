package library

// membraneSchema constrains every entry under "membrane".
const membraneSchema = `
#Membrane: {
	description:            *"" | string
	fixed_charge?:          string
	z_fix:                  *-1 | int & !=0
	manning_xi?:            number & >=0
	water_volume_fraction?: number & >0 & <=1
	iec?:                   string
	swelling_degree?:       number & >0
	dielectric_constant:    *30 | number & >0
	thickness?:             string
}
`
