package report

import (
	"fmt"
	"math"

	"github.com/rshade/carbonwise/internal/carbon"
)

// EPA Greenhouse Gas Equivalencies divisors (kg CO2e per unit).
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling over 10 years.
	EPATreeSeedlingFactor = 60.0
)

// MinEquivalencyThresholdKg is the smallest yearly footprint that gets
// equivalencies; below it the numbers round to nothing useful.
const MinEquivalencyThresholdKg = 1.0

// Equivalency is one everyday comparison for a yearly footprint.
type Equivalency struct {
	Label string
	Value float64
}

// Equivalencies converts a yearly footprint into everyday comparisons.
// It returns nil below MinEquivalencyThresholdKg.
func Equivalencies(yearlyKg float64) []Equivalency {
	if yearlyKg < MinEquivalencyThresholdKg || math.IsInf(yearlyKg, 0) || math.IsNaN(yearlyKg) {
		return nil
	}
	return []Equivalency{
		{Label: "miles driven", Value: yearlyKg / EPAMilesDrivenFactor},
		{Label: "days of home electricity", Value: yearlyKg / EPAHomeDayFactor},
		{Label: "tree seedlings grown for 10 years to absorb it", Value: yearlyKg / EPATreeSeedlingFactor},
	}
}

// equivalencyText is the one-line summary printed under the totals, or ""
// when no equivalency applies.
func equivalencyText(yearlyKg float64) string {
	eq := Equivalencies(yearlyKg)
	if len(eq) < 2 {
		return ""
	}
	return fmt.Sprintf("Each year that is like driving ~%s miles or powering a home for ~%s days",
		carbon.FormatNumber(eq[0].Value, 0), carbon.FormatNumber(eq[1].Value, 0))
}
