package carbon

// EnergySourceFactors maps each known electricity source to its emission
// factor in kg CO2e per kWh.
var EnergySourceFactors = map[EnergySource]float64{
	EnergySourceCoal:       0.9,
	EnergySourceNaturalGas: 0.5,
	EnergySourceNuclear:    0.02,
	EnergySourceRenewable:  0.05,
	EnergySourceMixed:      0.6,
}

// DefaultEnergySourceFactor is used for sources not listed in
// EnergySourceFactors. It equals the mixed-grid factor.
const DefaultEnergySourceFactor = 0.6

// EnergySourceFactor returns the emission factor for src in kg CO2e per kWh.
// Unknown or empty sources return DefaultEnergySourceFactor.
func EnergySourceFactor(src EnergySource) float64 {
	if factor, ok := EnergySourceFactors[src]; ok {
		return factor
	}
	return DefaultEnergySourceFactor
}

// Known reports whether src is one of the listed energy sources.
func (src EnergySource) Known() bool {
	_, ok := EnergySourceFactors[src]
	return ok
}

// DietMultipliers scales the base food emissions for each known diet.
var DietMultipliers = map[Diet]float64{
	DietOmnivore:    1.0,
	DietVegetarian:  0.7,
	DietVegan:       0.5,
	DietPescatarian: 0.8,
}

// DefaultDietMultiplier is used for diets not listed in DietMultipliers.
const DefaultDietMultiplier = 1.0

// DietMultiplier returns the food emissions multiplier for diet.
// Unknown or empty diets return DefaultDietMultiplier.
func DietMultiplier(diet Diet) float64 {
	if m, ok := DietMultipliers[diet]; ok {
		return m
	}
	return DefaultDietMultiplier
}

// Known reports whether diet is one of the listed diets.
func (diet Diet) Known() bool {
	_, ok := DietMultipliers[diet]
	return ok
}
