package model

const DefaultTriviaPoints = 10

type TriviaQuestion struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correct_answer"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      string     `json:"category"`
	EcoPoints     int        `json:"eco_points"`
	Explanation   string     `json:"explanation"`
	FunFact       string     `json:"fun_fact"`
}

// Points is the award for a correct answer; unset values fall back to DefaultTriviaPoints.
func (q *TriviaQuestion) Points() int {
	if q.EcoPoints <= 0 {
		return DefaultTriviaPoints
	}
	return q.EcoPoints
}
