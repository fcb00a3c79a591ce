package catalog

type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type TipCategory struct {
	Category string `json:"category"`
	Tips     []Tip  `json:"tips"`
}

type RegionalData struct {
	Region   string   `json:"region"`
	Facts    []string `json:"facts"`
	Concerns []string `json:"concerns"`
	Actions  []string `json:"actions"`
}

type EcoFact struct {
	Title string `json:"title"`
	Fact  string `json:"fact"`
}

var ecoTips = []TipCategory{
	{
		Category: "Energy",
		Tips: []Tip{
			{Title: "Switch to LED Bulbs", Description: "LED bulbs use 75% less energy than incandescent bulbs and last 25 times longer.", Impact: "Save ~$75/year"},
			{Title: "Unplug 'Vampire' Devices", Description: "Electronics in standby mode consume 5-10% of home electricity. Unplug or use smart power strips.", Impact: "Reduce 100 lbs CO₂/year"},
			{Title: "Optimize Thermostat", Description: "Set thermostat 7-10°F back for 8 hours daily. Use a programmable thermostat for automatic savings.", Impact: "Save 10% on energy bills"},
		},
	},
	{
		Category: "Transportation",
		Tips: []Tip{
			{Title: "Bike for Short Trips", Description: "Replace car trips under 2 miles with biking. It's healthier and eliminates emissions entirely.", Impact: "Save 1 lb CO₂ per mile"},
			{Title: "Carpool or Use Transit", Description: "Sharing rides or using public transport reduces your carbon footprint by up to 50%.", Impact: "Save 4,800 lbs CO₂/year"},
			{Title: "Maintain Your Vehicle", Description: "Keep tires properly inflated and engine tuned. Regular maintenance improves fuel efficiency by 10%.", Impact: "Save $100/year on gas"},
		},
	},
	{
		Category: "Diet",
		Tips: []Tip{
			{Title: "Meatless Mondays", Description: "Skipping meat one day per week reduces your carbon footprint by 8 lbs. Beef has the highest impact.", Impact: "Save 416 lbs CO₂/year"},
			{Title: "Buy Local & Seasonal", Description: "Local produce travels fewer miles and seasonal items don't require energy-intensive greenhouses.", Impact: "Reduce food miles by 80%"},
			{Title: "Reduce Food Waste", Description: "Plan meals, store food properly, and compost scraps. 30-40% of food supply is wasted.", Impact: "Save $1,500/year"},
		},
	},
	{
		Category: "Water",
		Tips: []Tip{
			{Title: "Fix Leaky Faucets", Description: "A leaking faucet can waste 3,000 gallons of water per year. Simple repairs make a big difference.", Impact: "Save 3,000 gallons/year"},
			{Title: "Shorter Showers", Description: "Reduce shower time by 2 minutes. Install low-flow showerheads to save even more.", Impact: "Save 1,750 gallons/year"},
			{Title: "Run Full Loads", Description: "Only run dishwashers and washing machines with full loads. Use cold water when possible.", Impact: "Save 3,400 gallons/year"},
		},
	},
}

var regionalData = []RegionalData{
	{
		Region: "Great Lakes (Michigan)",
		Facts: []string{
			"The Great Lakes contain 21% of the world's surface fresh water",
			"Over 3,500 species of plants and animals call the Great Lakes home",
			"35 million people depend on the Great Lakes for drinking water",
			"Climate change is warming Great Lakes waters 2x faster than air temperature",
		},
		Concerns: []string{
			"Invasive species threatening native ecosystems",
			"Microplastics pollution affecting aquatic life",
			"Agricultural runoff causing algal blooms",
			"Rising water temperatures impacting fish populations",
		},
		Actions: []string{
			"Participate in beach cleanups",
			"Support wetland restoration projects",
			"Reduce plastic use and properly dispose waste",
			"Advocate for stronger water quality regulations",
		},
	},
	{
		Region: "United States",
		Facts: []string{
			"The U.S. emits 15% of global CO₂ despite being 4% of population",
			"Americans generate 4.5 lbs of waste per person daily",
			"Renewable energy reached 21% of U.S. electricity in 2023",
			"Transportation accounts for 29% of U.S. greenhouse gas emissions",
		},
		Concerns: []string{
			"Increasing frequency of extreme weather events",
			"Biodiversity loss and habitat destruction",
			"Air quality issues in urban areas",
			"Ocean acidification affecting coastal ecosystems",
		},
		Actions: []string{
			"Support clean energy transition",
			"Reduce single-use plastics",
			"Vote for climate-conscious policies",
			"Participate in community conservation efforts",
		},
	},
}

var ecoFacts = []EcoFact{
	{Title: "Industrial Revolution Impact", Fact: "Since 1850, atmospheric CO₂ has increased by 50%, primarily from burning fossil fuels."},
	{Title: "Ocean Absorption", Fact: "Oceans absorb 25% of human CO₂ emissions, causing acidification that threatens marine life."},
	{Title: "Forest Power", Fact: "A mature tree absorbs ~48 lbs of CO₂ per year. Deforestation releases 15% of global emissions."},
	{Title: "Renewable Growth", Fact: "Solar and wind energy costs have dropped 90% since 2010, making clean energy increasingly accessible."},
	{Title: "Water Footprint", Fact: "It takes 1,800 gallons of water to produce 1 pound of beef. Plant-based diets significantly reduce water use."},
	{Title: "Solar Potential", Fact: "The sun delivers more energy to Earth in one hour than humanity uses in an entire year."},
}

func EcoTips() []TipCategory {
	return append([]TipCategory(nil), ecoTips...)
}

func Regions() []RegionalData {
	return append([]RegionalData(nil), regionalData...)
}

func EcoFacts() []EcoFact {
	return append([]EcoFact(nil), ecoFacts...)
}
