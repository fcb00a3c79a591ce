package catalog

import "strings"

const (
	AreaMichigan   = "Michigan"
	AreaCalifornia = "California"
	AreaDefault    = "Default"
)

type EndangeredSpecies struct {
	Name    string `json:"name"`
	Habitat string `json:"habitat"`
	Threat  string `json:"threat"`
	Fact    string `json:"fact"`
}

type InvasiveSpecies struct {
	Name   string `json:"name"`
	Origin string `json:"origin"`
	Impact string `json:"impact"`
	Cost   string `json:"cost"`
}

type Wildlife struct {
	Area       string              `json:"area"`
	Endangered []EndangeredSpecies `json:"endangered"`
	Invasive   []InvasiveSpecies   `json:"invasive"`
}

// Card is one flash card; Back holds the fact (endangered) or the cost (invasive).
type Card struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

var wildlife = map[string]Wildlife{
	AreaMichigan: {
		Area: AreaMichigan,
		Endangered: []EndangeredSpecies{
			{Name: "Piping Plover", Habitat: "Great Lakes shorelines", Threat: "Habitat loss", Fact: "Only 70 breeding pairs remain in the Great Lakes"},
			{Name: "Kirtland's Warbler", Habitat: "Jack pine forests", Threat: "Habitat destruction", Fact: "Recovered from near extinction with only 167 singing males in 1974"},
			{Name: "Gray Wolf", Habitat: "Northern forests", Threat: "Human conflict", Fact: "Once extinct in Michigan, now recovering with ~700 individuals"},
			{Name: "Eastern Massasauga Rattlesnake", Habitat: "Wetlands and prairies", Threat: "Habitat loss, persecution", Fact: "Michigan's only venomous snake, listed as federally threatened since 2016"},
			{Name: "Northern Long-eared Bat", Habitat: "Forests and caves", Threat: "White-nose syndrome", Fact: "Population declined 97% in some areas due to fungal disease"},
			{Name: "Lake Sturgeon", Habitat: "Great Lakes and rivers", Threat: "Overfishing, dams", Fact: "Can live over 100 years and grow to 300+ pounds, once near extinction"},
			{Name: "Karner Blue Butterfly", Habitat: "Oak savannas", Threat: "Habitat destruction", Fact: "Depends entirely on wild lupine plants for survival"},
			{Name: "Eastern Fox Snake", Habitat: "Wetlands near Great Lakes", Threat: "Habitat loss, killed by humans", Fact: "Often mistaken for rattlesnakes despite being harmless"},
			{Name: "Blanding's Turtle", Habitat: "Wetlands and woodlands", Threat: "Road mortality, habitat loss", Fact: "Can live over 75 years but takes 15-20 years to reach breeding age"},
		},
		Invasive: []InvasiveSpecies{
			{Name: "Zebra Mussel", Origin: "Eurasia", Impact: "Clogs water infrastructure, outcompetes native species", Cost: "$500M annually in Great Lakes"},
			{Name: "Sea Lamprey", Origin: "Atlantic Ocean", Impact: "Parasitizes native fish, decimated lake trout", Cost: "Killed 100+ million lbs of fish annually before control"},
			{Name: "Asian Carp", Origin: "Asia", Impact: "Threatens to disrupt entire food chain", Cost: "Could cause $7B in economic damage"},
			{Name: "Emerald Ash Borer", Origin: "Asia", Impact: "Kills ash trees, destroyed millions of trees", Cost: "Over $10B in damages and removal costs nationwide"},
			{Name: "Phragmites (Common Reed)", Origin: "Europe", Impact: "Forms dense monocultures, eliminates native wetland plants", Cost: "Reduces property values and wildlife habitat quality"},
			{Name: "Purple Loosestrife", Origin: "Europe", Impact: "Chokes out native wetland vegetation", Cost: "Costs millions in control efforts and lost wildlife habitat"},
			{Name: "Round Goby", Origin: "Black and Caspian Seas", Impact: "Competes with native fish, eats their eggs", Cost: "Disrupted $7B Great Lakes fishing industry"},
			{Name: "Eurasian Watermilfoil", Origin: "Europe and Asia", Impact: "Forms dense mats, impedes boating and swimming", Cost: "Millions spent annually on aquatic plant management"},
			{Name: "Feral Swine", Origin: "Domestic/Eurasian wild boar", Impact: "Destroys crops, spreads disease, damages ecosystems", Cost: "$2.5B in damages annually across U.S."},
			{Name: "Autumn Olive", Origin: "Asia", Impact: "Outcompetes native shrubs, alters soil chemistry", Cost: "Difficult and expensive to control once established"},
		},
	},
	AreaCalifornia: {
		Area: AreaCalifornia,
		Endangered: []EndangeredSpecies{
			{Name: "California Condor", Habitat: "Mountains, canyons", Threat: "Lead poisoning", Fact: "Largest land bird in North America, once critically endangered"},
			{Name: "Delta Smelt", Habitat: "Sacramento-San Joaquin Delta", Threat: "Habitat loss, water diversions", Fact: "Small fish, indicator of the health of the San Francisco Bay-Delta ecosystem"},
			{Name: "Giant Garter Snake", Habitat: "Central Valley wetlands", Threat: "Habitat loss", Fact: "Non-venomous snake, relies on marshy areas"},
			{Name: "Blunt-nosed Leopard Lizard", Habitat: "San Joaquin Valley grasslands", Threat: "Habitat destruction", Fact: "Endemic to California, one of the fastest lizards"},
			{Name: "San Joaquin Kit Fox", Habitat: "San Joaquin Valley grasslands", Threat: "Habitat loss", Fact: "Smallest fox species in North America"},
		},
		Invasive: []InvasiveSpecies{
			{Name: "Quagga Mussel", Origin: "Ukraine", Impact: "Clogs pipes, impacts water quality", Cost: "Millions in control and damage"},
			{Name: "Nutria", Origin: "South America", Impact: "Destroys wetlands, undermines infrastructure", Cost: "Significant agricultural damage"},
			{Name: "Arundo Donax (Giant Reed)", Origin: "Mediterranean", Impact: "Outcompetes native plants, increases fire risk", Cost: "Dominates riparian areas"},
			{Name: "New Zealand Mud Snail", Origin: "New Zealand", Impact: "Outcompetes native invertebrates, alters food web", Cost: "Impacts trout and salmon populations"},
			{Name: "Red Imported Fire Ant", Origin: "South America", Impact: "Damages agriculture, harms native wildlife and humans", Cost: "Billions in damages and medical costs nationwide"},
		},
	},
	AreaDefault: {
		Area: AreaDefault,
		Endangered: []EndangeredSpecies{
			{Name: "No specific data", Habitat: "N/A", Threat: "N/A", Fact: "Select a specific location to see local wildlife."},
		},
		Invasive: []InvasiveSpecies{
			{Name: "No specific data", Origin: "N/A", Impact: "N/A", Cost: "Select a specific location to see local wildlife."},
		},
	},
}

// ResolveArea maps a free-form location to a wildlife area by case-insensitive substring.
func ResolveArea(location string) string {
	l := strings.ToLower(location)
	switch {
	case strings.Contains(l, "michigan"):
		return AreaMichigan
	case strings.Contains(l, "california"):
		return AreaCalifornia
	default:
		return AreaDefault
	}
}

func WildlifeFor(location string) Wildlife {
	return wildlife[ResolveArea(location)]
}

// Cards flattens endangered then invasive species into flash cards.
func (w Wildlife) Cards() []Card {
	cards := make([]Card, 0, len(w.Endangered)+len(w.Invasive))
	for _, s := range w.Endangered {
		cards = append(cards, Card{Kind: "endangered", Name: s.Name, Front: s.Habitat + " · " + s.Threat, Back: s.Fact})
	}
	for _, s := range w.Invasive {
		cards = append(cards, Card{Kind: "invasive", Name: s.Name, Front: s.Origin + " · " + s.Impact, Back: s.Cost})
	}
	return cards
}

// CardAt cycles through the cards; negative indexes wrap from the end.
func (w Wildlife) CardAt(i int) Card {
	cards := w.Cards()
	n := len(cards)
	return cards[((i%n)+n)%n]
}
