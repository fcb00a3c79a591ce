package model

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Challenge struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	Category     string     `json:"category"`
	EcoPoints    int        `json:"eco_points"`
	DurationDays int        `json:"duration_days"`
	CO2Target    *float64   `json:"co2_target,omitempty"`
	Participants []string   `json:"participants"`
	CreatedAt    time.Time  `json:"created_date"`
}

func (c *Challenge) HasParticipant(email string) bool {
	return containsString(c.Participants, email)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
