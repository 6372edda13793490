package carbon

// EnergySource is the household's primary electricity source.
type EnergySource string

// Known energy sources.
const (
	EnergySourceCoal       EnergySource = "coal"
	EnergySourceNaturalGas EnergySource = "natural-gas"
	EnergySourceNuclear    EnergySource = "nuclear"
	EnergySourceRenewable  EnergySource = "renewable"
	EnergySourceMixed      EnergySource = "mixed"
)

// DefaultEnergySource is used when the profile does not name a source.
const DefaultEnergySource = EnergySourceMixed

// Diet is the household's dietary pattern.
type Diet string

// Known diets.
const (
	DietOmnivore    Diet = "omnivore"
	DietVegetarian  Diet = "vegetarian"
	DietVegan       Diet = "vegan"
	DietPescatarian Diet = "pescatarian"
)

// DefaultDiet is used when the profile does not name a diet.
const DefaultDiet = DietOmnivore

// Input is one month of self-reported activity.
//
// Zero values are meaningful: a zero distance or usage contributes nothing.
// EnergySource and Diet values outside the known set are kept as given and
// fall back to the default factor and multiplier.
type Input struct {
	// CarMiles is the distance driven by car, in miles.
	CarMiles float64 `json:"carMiles" yaml:"carMiles"`

	// PublicTransportHours is time spent on buses and trains.
	PublicTransportHours float64 `json:"publicTransportHours" yaml:"publicTransportHours"`

	// FlightHours is time spent flying.
	FlightHours float64 `json:"flightHours" yaml:"flightHours"`

	// ElectricityUsage is electricity consumed, in kWh.
	ElectricityUsage float64 `json:"electricityUsage" yaml:"electricityUsage"`

	// EnergySource is the primary electricity source.
	EnergySource EnergySource `json:"energySource" yaml:"energySource"`

	// EnergyEfficient reports energy-efficient appliances.
	EnergyEfficient bool `json:"energyEfficient" yaml:"energyEfficient"`

	// WasteKg is landfill waste produced, in kilograms.
	WasteKg float64 `json:"wasteKg" yaml:"wasteKg"`

	// RecyclePercentage is the share of waste recycled (0-100, not clamped).
	RecyclePercentage float64 `json:"recyclePercentage" yaml:"recyclePercentage"`

	// FoodType is the dietary pattern.
	FoodType Diet `json:"foodType" yaml:"foodType"`

	// FoodSpending is money spent on food, in currency units.
	FoodSpending float64 `json:"foodSpending" yaml:"foodSpending"`
}

// DefaultInput returns an Input with every field at its documented default.
func DefaultInput() Input {
	return Input{
		EnergySource: DefaultEnergySource,
		FoodType:     DefaultDiet,
	}
}

// TravelBreakdown is the travel share of the footprint.
type TravelBreakdown struct {
	Car             float64 `json:"car" yaml:"car"`
	PublicTransport float64 `json:"publicTransport" yaml:"publicTransport"`
	Flights         float64 `json:"flights" yaml:"flights"`
	Total           float64 `json:"total" yaml:"total"`
}

// EnergyBreakdown is the home energy share of the footprint.
// EfficiencyBonus is a fraction (0 or 0.15), not an amount.
type EnergyBreakdown struct {
	Electricity     float64 `json:"electricity" yaml:"electricity"`
	EfficiencyBonus float64 `json:"efficiencyBonus" yaml:"efficiencyBonus"`
	Total           float64 `json:"total" yaml:"total"`
}

// WasteBreakdown is the waste share of the footprint.
// RecyclingReduction is a fraction, not an amount.
type WasteBreakdown struct {
	TotalWaste         float64 `json:"totalWaste" yaml:"totalWaste"`
	RecyclingReduction float64 `json:"recyclingReduction" yaml:"recyclingReduction"`
	NetEmissions       float64 `json:"netEmissions" yaml:"netEmissions"`
}

// FoodBreakdown is the food share of the footprint.
type FoodBreakdown struct {
	Type      Diet    `json:"type" yaml:"type"`
	Spending  float64 `json:"spending" yaml:"spending"`
	Emissions float64 `json:"emissions" yaml:"emissions"`
}

// Breakdown decomposes the monthly footprint by category.
type Breakdown struct {
	Travel TravelBreakdown `json:"travel" yaml:"travel"`
	Energy EnergyBreakdown `json:"energy" yaml:"energy"`
	Waste  WasteBreakdown  `json:"waste" yaml:"waste"`
	Food   FoodBreakdown   `json:"food" yaml:"food"`
}

// Total returns the sum of the reported category totals.
func (b Breakdown) Total() float64 {
	return b.Travel.Total + b.Energy.Total + b.Waste.NetEmissions + b.Food.Emissions
}

// Category names the area a recommendation targets.
type Category string

// Recommendation categories, in evaluation order.
const (
	CategoryTravel  Category = "Travel"
	CategoryEnergy  Category = "Energy"
	CategoryWaste   Category = "Waste"
	CategoryFood    Category = "Food"
	CategoryGeneral Category = "General"
)

// Recommendation is a rule-triggered suggestion. PotentialReduction is an
// indicative range such as "20-30%", not a computed value.
type Recommendation struct {
	Category           Category `json:"category" yaml:"category"`
	Suggestion         string   `json:"suggestion" yaml:"suggestion"`
	PotentialReduction string   `json:"potentialReduction" yaml:"potentialReduction"`
}

// Result is the estimator output.
type Result struct {
	MonthlyEmissions float64          `json:"monthlyEmissions" yaml:"monthlyEmissions"`
	YearlyEmissions  float64          `json:"yearlyEmissions" yaml:"yearlyEmissions"`
	Breakdown        Breakdown        `json:"breakdown" yaml:"breakdown"`
	Recommendations  []Recommendation `json:"recommendations" yaml:"recommendations"`
}
