package carbon

// FootprintEstimator turns a month of activity into an emissions estimate.
type FootprintEstimator interface {
	// Estimate returns the breakdown, totals and recommendations for in.
	Estimate(in Input) Result
}

// Estimator implements FootprintEstimator with the fixed factor tables of
// this package. The zero value is ready to use.
type Estimator struct{}

// NewEstimator creates a new footprint estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate implements FootprintEstimator.
func (e *Estimator) Estimate(in Input) Result {
	return Estimate(in)
}

// Estimate calculates the monthly footprint for in.
//
// The calculation:
//  1. Travel = car miles × 0.404 + transit hours × 0.14 + flight hours × 90
//  2. Energy = kWh × source factor × (1 - efficiency bonus)
//  3. Waste = kg × 0.5 × (1 - recycle% / 100)
//  4. Food = spending × 0.5 × diet multiplier
//  5. Monthly = sum of the four category totals; yearly = monthly × 12
//
// A fresh Result is built on every call.
func Estimate(in Input) Result {
	breakdown := Breakdown{
		Travel: CalculateTravel(in.CarMiles, in.PublicTransportHours, in.FlightHours),
		Energy: CalculateEnergy(in.ElectricityUsage, in.EnergySource, in.EnergyEfficient),
		Waste:  CalculateWaste(in.WasteKg, in.RecyclePercentage),
		Food:   CalculateFood(in.FoodType, in.FoodSpending),
	}

	monthly := breakdown.Total()

	return Result{
		MonthlyEmissions: monthly,
		YearlyEmissions:  monthly * MonthsPerYear,
		Breakdown:        breakdown,
		Recommendations:  GenerateRecommendations(breakdown, monthly),
	}
}

// CalculateTravel applies the per-mode travel factors.
func CalculateTravel(carMiles, publicTransportHours, flightHours float64) TravelBreakdown {
	car := carMiles * CarKgPerMile
	transit := publicTransportHours * PublicTransportKgPerHour
	flights := flightHours * FlightKgPerHour

	return TravelBreakdown{
		Car:             car,
		PublicTransport: transit,
		Flights:         flights,
		Total:           car + transit + flights,
	}
}

// CalculateEnergy applies the source factor and the efficiency bonus.
// Electricity and Total carry the same, already discounted, value.
func CalculateEnergy(usageKWh float64, src EnergySource, efficient bool) EnergyBreakdown {
	base := usageKWh * EnergySourceFactor(src)

	bonus := 0.0
	if efficient {
		bonus = EnergyEfficientBonus
	}

	net := base * (1 - bonus)

	return EnergyBreakdown{
		Electricity:     net,
		EfficiencyBonus: bonus,
		Total:           net,
	}
}

// CalculateWaste applies the landfill factor and the recycling reduction.
// recyclePercentage is used as given; values outside 0-100 are not clamped.
func CalculateWaste(wasteKg, recyclePercentage float64) WasteBreakdown {
	total := wasteKg * WasteKgPerKg
	reduction := recyclePercentage / PercentDivisor

	return WasteBreakdown{
		TotalWaste:         total,
		RecyclingReduction: reduction,
		NetEmissions:       total * (1 - reduction),
	}
}

// CalculateFood applies the spending factor and the diet multiplier.
// The diet is echoed as given, even when it is not a known diet.
func CalculateFood(diet Diet, spending float64) FoodBreakdown {
	return FoodBreakdown{
		Type:      diet,
		Spending:  spending,
		Emissions: spending * FoodKgPerCurrencyUnit * DietMultiplier(diet),
	}
}
