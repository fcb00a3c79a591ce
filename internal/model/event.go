package model

type VolunteerEvent struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	EventType         string   `json:"event_type"`
	Location          string   `json:"location"`
	Region            string   `json:"region"`
	Date              Day      `json:"date"`
	Time              string   `json:"time"`
	DurationHours     float64  `json:"duration_hours"`
	MaxParticipants   int      `json:"max_participants"`
	RegisteredUsers   []string `json:"registered_users"`
	ImpactDescription string   `json:"impact_description"`
	EcoPointsReward   int      `json:"eco_points_reward"`
}

func (e *VolunteerEvent) IsRegistered(email string) bool {
	return containsString(e.RegisteredUsers, email)
}

// SpotsLeft is meaningless when MaxParticipants is zero (unlimited).
func (e *VolunteerEvent) SpotsLeft() int {
	return e.MaxParticipants - len(e.RegisteredUsers)
}

func (e *VolunteerEvent) IsFull() bool {
	return e.MaxParticipants > 0 && e.SpotsLeft() <= 0
}
