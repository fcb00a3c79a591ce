package repository

import (
	"context"

	"ecotrack/internal/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TriviaQuestion struct {
	ID            uuid.UUID      `db:"id"`
	Question      string         `db:"question"`
	Options       pq.StringArray `db:"options"`
	CorrectAnswer string         `db:"correct_answer"`
	Difficulty    string         `db:"difficulty"`
	Category      string         `db:"category"`
	EcoPoints     int            `db:"eco_points"`
	Explanation   string         `db:"explanation"`
	FunFact       string         `db:"fun_fact"`
}

func (r *Repository) ListTriviaQuestions(ctx context.Context) ([]*model.TriviaQuestion, error) {
	query, args, err := psql.
		Select("*").
		From("trivia_questions").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []TriviaQuestion
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	questions := make([]*model.TriviaQuestion, len(rows))
	for i, q := range rows {
		questions[i] = &model.TriviaQuestion{
			ID:            q.ID.String(),
			Question:      q.Question,
			Options:       nonNil(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Difficulty:    model.Difficulty(q.Difficulty),
			Category:      q.Category,
			EcoPoints:     q.EcoPoints,
			Explanation:   q.Explanation,
			FunFact:       q.FunFact,
		}
	}
	return questions, nil
}
