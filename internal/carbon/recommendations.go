package carbon

// rule is one recommendation trigger. Rules are evaluated in slice order
// and each fires independently of the others.
type rule struct {
	recommendation Recommendation
	applies        func(b Breakdown, monthly float64) bool
}

// rules lists the recommendation triggers in evaluation order.
var rules = []rule{
	{
		recommendation: Recommendation{
			Category:           CategoryTravel,
			Suggestion:         "Consider using public transportation more frequently to reduce car emissions",
			PotentialReduction: "20-30%",
		},
		applies: func(b Breakdown, _ float64) bool {
			return b.Travel.Car > b.Travel.PublicTransport*CarToTransitRatio
		},
	},
	{
		recommendation: Recommendation{
			Category:           CategoryEnergy,
			Suggestion:         "Switch to energy-efficient appliances and consider renewable energy sources",
			PotentialReduction: "15-25%",
		},
		applies: func(b Breakdown, _ float64) bool {
			return b.Energy.Total > HighEnergyThresholdKg
		},
	},
	{
		recommendation: Recommendation{
			Category:           CategoryWaste,
			Suggestion:         "Increase recycling efforts and reduce overall waste generation",
			PotentialReduction: "10-20%",
		},
		applies: func(b Breakdown, _ float64) bool {
			return b.Waste.RecyclingReduction < LowRecyclingThreshold
		},
	},
	{
		recommendation: Recommendation{
			Category:           CategoryFood,
			Suggestion:         "Consider reducing meat consumption or switching to plant-based options",
			PotentialReduction: "20-40%",
		},
		applies: func(b Breakdown, _ float64) bool {
			return b.Food.Type == DietOmnivore
		},
	},
	{
		recommendation: Recommendation{
			Category:           CategoryGeneral,
			Suggestion:         "Your carbon footprint is above average. Consider implementing multiple changes for significant impact",
			PotentialReduction: "30-50%",
		},
		applies: func(_ Breakdown, monthly float64) bool {
			return monthly > HighFootprintThresholdKg
		},
	},
}

// GenerateRecommendations evaluates every rule against the breakdown and
// the monthly total. The result follows rule order (travel, energy, waste,
// food, general), not priority. An empty, non-nil slice means no rule fired.
func GenerateRecommendations(b Breakdown, monthly float64) []Recommendation {
	recommendations := make([]Recommendation, 0, len(rules))
	for _, r := range rules {
		if r.applies(b, monthly) {
			recommendations = append(recommendations, r.recommendation)
		}
	}
	return recommendations
}
