// Package catalog holds the static tables EcoTrack computes with and serves:
// emission factors, quick offsets, badges, learning content and wildlife cards.
package catalog

import "ecotrack/internal/model"

// EmissionFactor is kg of CO2 per Unit. Negative factors offset emissions.
type EmissionFactor struct {
	Name        string  `json:"name"`
	CO2PerUnit  float64 `json:"co2_per_unit"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

var emissionFactors = map[model.Category][]EmissionFactor{
	model.CategoryTransport: {
		{Name: "Car (Gasoline)", CO2PerUnit: 0.41, Unit: "mile", Description: "Standard gas-powered vehicle"},
		{Name: "Car (Electric)", CO2PerUnit: 0.15, Unit: "mile", Description: "Electric vehicle charging"},
		{Name: "Bus", CO2PerUnit: 0.1, Unit: "mile", Description: "Public bus transportation"},
		{Name: "Train/Subway", CO2PerUnit: 0.05, Unit: "mile", Description: "Rail transportation"},
		{Name: "Bike", CO2PerUnit: -0.41, Unit: "mile", Description: "Replaced driving with biking"},
		{Name: "Walk", CO2PerUnit: -0.41, Unit: "mile", Description: "Replaced driving with walking"},
		{Name: "Carpool", CO2PerUnit: 0.2, Unit: "mile", Description: "Shared ride, ~50% reduction"},
		{Name: "Motorcycle", CO2PerUnit: 0.25, Unit: "mile", Description: "Gas-powered motorcycle"},
	},
	model.CategoryEnergy: {
		{Name: "Electricity Used", CO2PerUnit: 0.37, Unit: "kWh", Description: "Grid electricity consumption"},
		{Name: "Natural Gas Used", CO2PerUnit: 5.3, Unit: "therm", Description: "Natural gas heating/cooking"},
		{Name: "Hot Shower", CO2PerUnit: 0.2, Unit: "minute", Description: "Standard gas/electric water heater"},
		{Name: "Hot Shower (Low-flow)", CO2PerUnit: 0.1, Unit: "minute", Description: "Low-flow showerhead, 50% reduction"},
		{Name: "Cold/Cool Shower", CO2PerUnit: 0.02, Unit: "minute", Description: "Minimal heating energy"},
		{Name: "Solar Energy Generated", CO2PerUnit: -0.37, Unit: "kWh", Description: "Offset grid electricity"},
		{Name: "LED Bulbs Installed", CO2PerUnit: -1.2, Unit: "bulb", Description: "Replaced incandescent bulbs"},
		{Name: "Thermostat Optimized", CO2PerUnit: -2.0, Unit: "day", Description: "Reduced heating/cooling"},
		{Name: "Appliances Unplugged", CO2PerUnit: -0.5, Unit: "device", Description: "Eliminated phantom energy"},
		{Name: "Energy Audit Done", CO2PerUnit: -3.0, Unit: "audit", Description: "Home efficiency improvements"},
	},
	model.CategoryDiet: {
		{Name: "Beef (per kg)", CO2PerUnit: 36, Unit: "kg", Description: "Highest carbon footprint meat"},
		{Name: "Pork (per kg)", CO2PerUnit: 12, Unit: "kg", Description: "Medium-high carbon meat"},
		{Name: "Chicken (per kg)", CO2PerUnit: 6, Unit: "kg", Description: "Lower carbon poultry"},
		{Name: "Fish (per kg)", CO2PerUnit: 5, Unit: "kg", Description: "Varies by type and source"},
		{Name: "Vegetarian Meal", CO2PerUnit: 3, Unit: "meal", Description: "~250g food, dairy included"},
		{Name: "Vegan Meal", CO2PerUnit: 1.5, Unit: "meal", Description: "~250g plant-based food"},
		{Name: "Meatless Day", CO2PerUnit: -15, Unit: "day", Description: "Replaced typical meat consumption"},
		{Name: "Local/Seasonal Produce", CO2PerUnit: -1.0, Unit: "kg", Description: "Reduced food miles"},
	},
	model.CategoryShopping: {
		{Name: "Fast Fashion Item", CO2PerUnit: 7.5, Unit: "item", Description: "New clothing/accessories"},
		{Name: "General Clothing Purchase", CO2PerUnit: 1.9, Unit: "USD", Description: "Based on spending amount"},
		{Name: "Secondhand Clothing", CO2PerUnit: -3.5, Unit: "item", Description: "Avoided new production"},
		{Name: "Reusable Bag Used", CO2PerUnit: -0.04, Unit: "bag", Description: "Replaced single-use plastic"},
		{Name: "Reusable Water Bottle", CO2PerUnit: -0.5, Unit: "day", Description: "Avoided plastic bottles"},
		{Name: "Local Farmers Market", CO2PerUnit: -2.0, Unit: "visit", Description: "Reduced transportation emissions"},
		{Name: "Bulk Shopping (no packaging)", CO2PerUnit: -1.0, Unit: "trip", Description: "Avoided packaging waste"},
		{Name: "Electronics Recycled", CO2PerUnit: -5.0, Unit: "device", Description: "Proper disposal/reuse"},
	},
}

// LookupFactor finds the factor for a subcategory within a category.
func LookupFactor(category model.Category, subcategory string) (EmissionFactor, bool) {
	for _, f := range emissionFactors[category] {
		if f.Name == subcategory {
			return f, true
		}
	}
	return EmissionFactor{}, false
}

// Factors returns a copy of the factors of one category in display order.
func Factors(category model.Category) []EmissionFactor {
	return append([]EmissionFactor(nil), emissionFactors[category]...)
}

type CategoryFactors struct {
	Category model.Category   `json:"category"`
	Factors  []EmissionFactor `json:"factors"`
}

// AllFactors lists every category with its factors.
func AllFactors() []CategoryFactors {
	out := make([]CategoryFactors, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, CategoryFactors{Category: c, Factors: Factors(c)})
	}
	return out
}
