package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEnergySourceFactors_AllWithinValidRange validates that every factor
// is a plausible kg CO2e per kWh value. Even coal-heavy grids stay below
// 1.5 kg per kWh.
func TestEnergySourceFactors_AllWithinValidRange(t *testing.T) {
	for src, factor := range EnergySourceFactors {
		t.Run(string(src), func(t *testing.T) {
			assert.Greater(t, factor, 0.0)
			assert.LessOrEqual(t, factor, 1.5)
		})
	}
}

func TestEnergySourceFactor(t *testing.T) {
	tests := []struct {
		source EnergySource
		want   float64
	}{
		{EnergySourceCoal, 0.9},
		{EnergySourceNaturalGas, 0.5},
		{EnergySourceNuclear, 0.02},
		{EnergySourceRenewable, 0.05},
		{EnergySourceMixed, 0.6},
		{"hydro", DefaultEnergySourceFactor},
		{"", DefaultEnergySourceFactor},
		{"Coal", DefaultEnergySourceFactor}, // lookups are case sensitive
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			assert.Equal(t, tt.want, EnergySourceFactor(tt.source))
		})
	}
}

func TestEnergySourceFactors_Ordering(t *testing.T) {
	// Dirtier sources must never be rated below cleaner ones.
	assert.Greater(t, EnergySourceFactors[EnergySourceCoal], EnergySourceFactors[EnergySourceMixed])
	assert.Greater(t, EnergySourceFactors[EnergySourceMixed], EnergySourceFactors[EnergySourceNaturalGas])
	assert.Greater(t, EnergySourceFactors[EnergySourceRenewable], EnergySourceFactors[EnergySourceNuclear])
	assert.Equal(t, EnergySourceFactors[EnergySourceMixed], DefaultEnergySourceFactor)
}

func TestEnergySource_Known(t *testing.T) {
	assert.True(t, EnergySourceNaturalGas.Known())
	assert.True(t, DefaultEnergySource.Known())
	assert.False(t, EnergySource("natural_gas").Known())
	assert.False(t, EnergySource("").Known())
}

func TestDietMultiplier(t *testing.T) {
	tests := []struct {
		diet Diet
		want float64
	}{
		{DietOmnivore, 1.0},
		{DietVegetarian, 0.7},
		{DietVegan, 0.5},
		{DietPescatarian, 0.8},
		{"flexitarian", DefaultDietMultiplier},
		{"", DefaultDietMultiplier},
	}

	for _, tt := range tests {
		t.Run(string(tt.diet), func(t *testing.T) {
			assert.Equal(t, tt.want, DietMultiplier(tt.diet))
		})
	}
}

func TestDiet_Known(t *testing.T) {
	for diet := range DietMultipliers {
		assert.True(t, diet.Known(), "diet %q should be known", diet)
	}
	assert.True(t, DefaultDiet.Known())
	assert.False(t, Diet("Vegan").Known())
}
