package catalog

import "ecotrack/internal/model"

const OffsetUnit = "action"

// OffsetAction is a canned one-click offset recorded with quantity 1.
type OffsetAction struct {
	Name        string         `json:"name"`
	Impact      float64        `json:"impact"`
	Category    model.Category `json:"category"`
	Subcategory string         `json:"subcategory"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
}

var offsetActions = []OffsetAction{
	{Name: "Plant a tree", Impact: -0.05, Category: model.CategoryShopping, Subcategory: "Tree Planting", Description: "Planted a tree for carbon offset", Icon: "🌱"},
	{Name: "Maintain trees/composting", Impact: -0.5, Category: model.CategoryShopping, Subcategory: "Composting & Tree Care", Description: "Maintained trees or composted organic waste", Icon: "🌳"},
	{Name: "Bike/walk 5 miles", Impact: -1, Category: model.CategoryTransport, Subcategory: "Bike/Walk", Description: "Biked or walked 5 miles instead of driving", Icon: "🚴"},
	{Name: "Work from home", Impact: -2, Category: model.CategoryTransport, Subcategory: "Work from Home", Description: "Worked from home, avoiding commute", Icon: "🏠"},
	{Name: "Renewable energy/thermostat", Impact: -1.5, Category: model.CategoryEnergy, Subcategory: "Energy Savings", Description: "Used renewable energy or optimized thermostat", Icon: "⚡"},
	{Name: "LED lights & unplug devices", Impact: -0.3, Category: model.CategoryEnergy, Subcategory: "LED & Unplugging", Description: "Used LED lights and unplugged devices", Icon: "💡"},
	{Name: "Vegetarian day", Impact: -2.5, Category: model.CategoryDiet, Subcategory: "Vegetarian Day", Description: "Ate vegetarian for the entire day", Icon: "🥗"},
	{Name: "Vegan day", Impact: -3.5, Category: model.CategoryDiet, Subcategory: "Vegan Day", Description: "Ate vegan for the entire day", Icon: "🌿"},
	{Name: "Reusable bottles", Impact: -0.1, Category: model.CategoryShopping, Subcategory: "Reusable Bottle", Description: "Used reusable water bottles", Icon: "♻️"},
	{Name: "Avoid fast fashion", Impact: -0.3, Category: model.CategoryShopping, Subcategory: "Avoided Fast Fashion", Description: "Avoided purchasing fast fashion items", Icon: "👕"},
	{Name: "Buy local produce", Impact: -0.5, Category: model.CategoryShopping, Subcategory: "Local Produce", Description: "Bought local or seasonal produce", Icon: "🛒"},
}

func LookupOffset(name string) (OffsetAction, bool) {
	for _, a := range offsetActions {
		if a.Name == name {
			return a, true
		}
	}
	return OffsetAction{}, false
}

func OffsetActions() []OffsetAction {
	return append([]OffsetAction(nil), offsetActions...)
}
