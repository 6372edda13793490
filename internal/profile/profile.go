// Package profile turns a loosely-typed lifestyle profile into a
// carbon.Input.
//
// Profiles arrive as JSON from web forms (where numbers are often posted as
// strings), as YAML or JSON files for the CLI, and as protobuf Structs over
// gRPC. All of them are reduced to a map of field name to value and parsed
// by Parse, which applies the documented defaults:
//
//	carMiles, publicTransportHours, flightHours  0
//	electricityUsage                             0
//	energySource                                 "mixed"
//	energyEfficient                              false
//	wasteKg, recyclePercentage                   0
//	foodType                                     "omnivore"
//	foodSpending                                 0
//
// Unknown keys are ignored.
package profile

import (
	"math"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/rshade/carbonwise/internal/carbon"
)

// Field names as they appear on the wire.
const (
	FieldCarMiles             = "carMiles"
	FieldPublicTransportHours = "publicTransportHours"
	FieldFlightHours          = "flightHours"
	FieldElectricityUsage     = "electricityUsage"
	FieldEnergySource         = "energySource"
	FieldEnergyEfficient      = "energyEfficient"
	FieldWasteKg              = "wasteKg"
	FieldRecyclePercentage    = "recyclePercentage"
	FieldFoodType             = "foodType"
	FieldFoodSpending         = "foodSpending"
)

// Fields lists every recognised field name in form order.
var Fields = []string{
	FieldCarMiles,
	FieldPublicTransportHours,
	FieldFlightHours,
	FieldElectricityUsage,
	FieldEnergySource,
	FieldEnergyEfficient,
	FieldWasteKg,
	FieldRecyclePercentage,
	FieldFoodType,
	FieldFoodSpending,
}

// IsField reports whether name is a recognised profile field.
func IsField(name string) bool {
	return slices.Contains(Fields, name)
}

// numericFields binds each numeric wire field to its Input slot.
var numericFields = []struct {
	name string
	slot func(in *carbon.Input) *float64
}{
	{FieldCarMiles, func(in *carbon.Input) *float64 { return &in.CarMiles }},
	{FieldPublicTransportHours, func(in *carbon.Input) *float64 { return &in.PublicTransportHours }},
	{FieldFlightHours, func(in *carbon.Input) *float64 { return &in.FlightHours }},
	{FieldElectricityUsage, func(in *carbon.Input) *float64 { return &in.ElectricityUsage }},
	{FieldWasteKg, func(in *carbon.Input) *float64 { return &in.WasteKg }},
	{FieldRecyclePercentage, func(in *carbon.Input) *float64 { return &in.RecyclePercentage }},
	{FieldFoodSpending, func(in *carbon.Input) *float64 { return &in.FoodSpending }},
}

// Parse builds an Input from raw field values. A nil map yields
// carbon.DefaultInput(). Negative numbers and out-of-range percentages are
// accepted as given; only values that are not numbers at all, or are not
// finite, are rejected with a *ValidationError.
func Parse(raw map[string]any) (carbon.Input, error) {
	in := carbon.DefaultInput()

	for _, f := range numericFields {
		v, ok := raw[f.name]
		if !ok {
			continue
		}
		n, err := parseNumber(f.name, v)
		if err != nil {
			return carbon.Input{}, err
		}
		*f.slot(&in) = n
	}

	if v, ok := raw[FieldEnergyEfficient]; ok {
		b, err := parseFlag(FieldEnergyEfficient, v)
		if err != nil {
			return carbon.Input{}, err
		}
		in.EnergyEfficient = b
	}

	if v, ok := raw[FieldEnergySource]; ok {
		s, err := parseEnum(FieldEnergySource, v)
		if err != nil {
			return carbon.Input{}, err
		}
		in.EnergySource = carbon.EnergySource(s)
	}

	if v, ok := raw[FieldFoodType]; ok {
		s, err := parseEnum(FieldFoodType, v)
		if err != nil {
			return carbon.Input{}, err
		}
		in.FoodType = carbon.Diet(s)
	}

	return in, nil
}

// parseNumber accepts numbers and numeric strings. null and "" count as 0,
// matching what an untouched form input posts.
func parseNumber(field string, v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case bool:
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be a number"}
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, nil
		}
		v = t
	}

	n, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be a number"}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be finite"}
	}
	return n, nil
}

// parseFlag accepts booleans and their common string spellings.
// null and "" count as false.
func parseFlag(field string, v any) (bool, error) {
	if v == nil {
		return false, nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return false, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, &ValidationError{Field: field, Value: v, Reason: "must be a boolean"}
	}
	return b, nil
}

// parseEnum accepts strings only. The value is kept verbatim; unknown
// values are resolved to default factors by the estimator.
func parseEnum(field string, v any) (string, error) {
	if v == nil {
		switch field {
		case FieldEnergySource:
			return string(carbon.DefaultEnergySource), nil
		default:
			return string(carbon.DefaultDiet), nil
		}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: field, Value: v, Reason: "must be a string"}
	}
	return s, nil
}
