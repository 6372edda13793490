// Package carbon estimates a household's monthly and yearly carbon
// emissions from self-reported travel, energy, waste and food inputs.
//
// All results are in kilograms of CO2-equivalent (kg CO2e). Every
// function in this package is pure: no I/O, no logging, no shared state.
package carbon

// Travel factors.
const (
	// CarKgPerMile is the emission factor for an average passenger car.
	CarKgPerMile = 0.404

	// PublicTransportKgPerHour is the emission factor for bus and rail travel.
	PublicTransportKgPerHour = 0.14

	// FlightKgPerHour is the emission factor for one hour of commercial flight.
	FlightKgPerHour = 90.0
)

// Energy factors.
const (
	// EnergyEfficientBonus is the fractional reduction applied to electricity
	// emissions when the household uses energy-efficient appliances.
	EnergyEfficientBonus = 0.15
)

// Waste factors.
const (
	// WasteKgPerKg is the emission factor for one kilogram of landfill waste.
	WasteKgPerKg = 0.5

	// PercentDivisor converts a 0-100 recycle percentage into a fraction.
	PercentDivisor = 100.0
)

// Food factors.
const (
	// FoodKgPerCurrencyUnit is the base emission factor for food spending.
	FoodKgPerCurrencyUnit = 0.5
)

// MonthsPerYear converts monthly emissions into yearly emissions.
const MonthsPerYear = 12

// Recommendation thresholds.
const (
	// CarToTransitRatio fires the travel recommendation when car emissions
	// exceed public transport emissions by this factor.
	CarToTransitRatio = 2.0

	// HighEnergyThresholdKg fires the energy recommendation.
	HighEnergyThresholdKg = 500.0

	// LowRecyclingThreshold fires the waste recommendation when the
	// recycled fraction is below it.
	LowRecyclingThreshold = 0.5

	// HighFootprintThresholdKg fires the general recommendation.
	HighFootprintThresholdKg = 1000.0
)
