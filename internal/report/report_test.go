package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/carbonwise/internal/carbon"
)

func referenceResult() carbon.Result {
	return carbon.Estimate(carbon.Input{
		CarMiles:          1000,
		ElectricityUsage:  300,
		EnergySource:      carbon.EnergySourceRenewable,
		EnergyEfficient:   true,
		WasteKg:           20,
		RecyclePercentage: 80,
		FoodType:          carbon.DietVegan,
		FoodSpending:      200,
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{" yml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderText_Reference(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, referenceResult()))

	out := buf.String()
	assert.Contains(t, out, "CARBON FOOTPRINT")
	assert.Regexp(t, `Monthly: 468\.[78] kg CO2`, out)
	assert.Contains(t, out, "Yearly:  5,625.0 kg CO2")
	assert.Contains(t, out, "Level:   Low - Excellent! Your carbon footprint is below average.")
	assert.Contains(t, out, "~29,297 miles")
	assert.Contains(t, out, "~307 days")
	assert.Contains(t, out, "Travel   404.0 kg CO2 (86%)")
	assert.Regexp(t, `Energy   12\.[78] kg CO2 \(3%\)`, out)
	assert.Contains(t, out, "Food     50.0 kg CO2 (11%)")
	assert.Contains(t, out, "efficiency bonus 15%")
	assert.Contains(t, out, "recycling reduction 80%")
	assert.Contains(t, out, "vegan diet")
	assert.Contains(t, out, "1. [Travel] Consider using public transportation")
	assert.Contains(t, out, "Potential reduction: 20-30%")
	assert.NotContains(t, out, CongratulationsMessage)
	assert.NotContains(t, out, "\x1b[", "plain output must not carry ANSI escapes")
}

func TestRenderText_NoRecommendations(t *testing.T) {
	res := carbon.Estimate(carbon.Input{
		EnergySource:      carbon.EnergySourceMixed,
		RecyclePercentage: 100,
		FoodType:          carbon.DietVegan,
	})
	require.Empty(t, res.Recommendations)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, res))

	out := buf.String()
	assert.Contains(t, out, CongratulationsMessage)
	assert.NotContains(t, out, "(0%)", "shares are omitted for a zero total")
	assert.NotContains(t, out, "miles", "no equivalency below the threshold")
}

func TestRenderText_VeryHigh(t *testing.T) {
	res := carbon.Estimate(carbon.Input{
		FlightHours:  20,
		EnergySource: carbon.EnergySourceCoal,
		FoodType:     carbon.DietOmnivore,
	})

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "Level:   Very High")
	assert.Contains(t, out, "[General]")
}

func TestRenderStyled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStyled(&buf, referenceResult()))

	out := buf.String()
	assert.Contains(t, out, "CARBON FOOTPRINT")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "Low")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, referenceResult(), FormatJSON))

	var env struct {
		Success bool          `json:"success"`
		Data    carbon.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.InDelta(t, 468.75, env.Data.MonthlyEmissions, 1e-9)
	assert.Len(t, env.Data.Recommendations, 1)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, referenceResult(), FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "success: true")
	assert.Contains(t, out, "monthlyEmissions: 468.7")

	var env Envelope
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &env))
	assert.InDelta(t, 5625.0, env.Data.YearlyEmissions, 1e-8)
	assert.Equal(t, carbon.DietVegan, env.Data.Breakdown.Food.Type)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, carbon.Result{}, Format("csv"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEquivalencies(t *testing.T) {
	assert.Nil(t, Equivalencies(0.5))
	assert.Nil(t, Equivalencies(-10))

	eq := Equivalencies(5625)
	require.Len(t, eq, 3)
	assert.InDelta(t, 29296.875, eq[0].Value, 1e-6)
	assert.InDelta(t, 5625/18.3, eq[1].Value, 1e-9)
	assert.InDelta(t, 93.75, eq[2].Value, 1e-9)
}
