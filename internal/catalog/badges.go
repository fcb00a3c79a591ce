package catalog

const (
	BadgeFirstSteps    = "First Steps"
	BadgeWeekWarrior   = "Week Warrior"
	BadgeTreePlanter   = "Tree Planter"
	BadgeCenturyClub   = "Century Club"
	BadgeCommunityHero = "Community Hero"
)

// BadgeMetric names the quantity a badge requirement is compared against.
type BadgeMetric string

const (
	MetricActivities       BadgeMetric = "activities"
	MetricLongestStreak    BadgeMetric = "longest_streak"
	MetricCO2Saved         BadgeMetric = "co2_saved"
	MetricEcoPoints        BadgeMetric = "eco_points"
	MetricEventsRegistered BadgeMetric = "events_registered"
)

type Badge struct {
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Description string      `json:"description"`
	Metric      BadgeMetric `json:"metric"`
	Requirement float64     `json:"requirement"`
}

var badges = []Badge{
	{Name: BadgeFirstSteps, Icon: "🌱", Description: "Log your first activity", Metric: MetricActivities, Requirement: 1},
	{Name: BadgeWeekWarrior, Icon: "🔥", Description: "Maintain a 7-day streak", Metric: MetricLongestStreak, Requirement: 7},
	{Name: BadgeTreePlanter, Icon: "🌳", Description: "Save CO₂ equivalent of 10 trees", Metric: MetricCO2Saved, Requirement: 210},
	{Name: BadgeCenturyClub, Icon: "💯", Description: "Earn 100 EcoPoints", Metric: MetricEcoPoints, Requirement: 100},
	{Name: BadgeCommunityHero, Icon: "🤝", Description: "Join 3 volunteer events", Metric: MetricEventsRegistered, Requirement: 3},
}

func Badges() []Badge {
	return append([]Badge(nil), badges...)
}

// EarnedBadges returns the names of badges whose requirement is met by the given metrics.
// Metrics absent from the map are not evaluated.
func EarnedBadges(metrics map[BadgeMetric]float64) []string {
	var earned []string
	for _, b := range badges {
		v, ok := metrics[b.Metric]
		if ok && v >= b.Requirement {
			earned = append(earned, b.Name)
		}
	}
	return earned
}
