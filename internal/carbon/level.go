package carbon

import "fmt"

// Level is a coarse rating of a monthly footprint.
type Level int

const (
	// LevelLow is below 500 kg CO2e per month.
	LevelLow Level = iota

	// LevelModerate is 500 to below 1000 kg CO2e per month.
	LevelModerate

	// LevelHigh is 1000 to below 1500 kg CO2e per month.
	LevelHigh

	// LevelVeryHigh is 1500 kg CO2e per month or more.
	LevelVeryHigh
)

// Upper bounds (exclusive) of each level in kg CO2e per month.
const (
	LowLevelMaxKg      = 500.0
	ModerateLevelMaxKg = 1000.0
	HighLevelMaxKg     = 1500.0
)

// ClassifyLevel rates a monthly footprint.
func ClassifyLevel(monthlyKg float64) Level {
	switch {
	case monthlyKg < LowLevelMaxKg:
		return LevelLow
	case monthlyKg < ModerateLevelMaxKg:
		return LevelModerate
	case monthlyKg < HighLevelMaxKg:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelModerate:
		return "Moderate"
	case LevelHigh:
		return "High"
	case LevelVeryHigh:
		return "Very High"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Description returns the advice shown alongside the level.
func (l Level) Description() string {
	switch l {
	case LevelLow:
		return "Excellent! Your carbon footprint is below average."
	case LevelModerate:
		return "Good! You're doing well, but there's room for improvement."
	case LevelHigh:
		return "Your carbon footprint is above average. Consider making changes."
	default:
		return "Your carbon footprint is significantly above average. Immediate action recommended."
	}
}
