package model

const (
	DefaultDailyCarbonLimit  = 30.0
	DefaultWeeklyCarbonLimit = 200.0
	DefaultDailyGoal         = 5.0
)

// UserProgress is the per-user summary row, one per UserEmail.
type UserProgress struct {
	ID                   string   `json:"id"`
	UserEmail            string   `json:"user_email"`
	EcoPoints            int      `json:"eco_points"`
	TotalCarbonFootprint float64  `json:"total_carbon_footprint"`
	TotalCO2Saved        float64  `json:"total_co2_saved"`
	CurrentStreak        int      `json:"current_streak"`
	LongestStreak        int      `json:"longest_streak"`
	LastActivityDate     Day      `json:"last_activity_date,omitempty"`
	DailyCarbonLimit     float64  `json:"daily_carbon_limit"`
	WeeklyCarbonLimit    float64  `json:"weekly_carbon_limit"`
	DailyGoal            float64  `json:"daily_goal"`
	Badges               []string `json:"badges"`
	Version              int      `json:"version,omitempty"`
}

// DefaultProgress is what the read side shows for a user without a row. It is never persisted.
func DefaultProgress(email string) *UserProgress {
	return &UserProgress{
		UserEmail:         email,
		DailyCarbonLimit:  DefaultDailyCarbonLimit,
		WeeklyCarbonLimit: DefaultWeeklyCarbonLimit,
		DailyGoal:         DefaultDailyGoal,
		Badges:            []string{},
	}
}

func (p *UserProgress) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

func (p *UserProgress) Clone() *UserProgress {
	c := *p
	c.Badges = append([]string(nil), p.Badges...)
	return &c
}
