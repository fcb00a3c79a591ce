package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecotrack/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Challenge struct {
	ID           uuid.UUID       `db:"id"`
	Title        string          `db:"title"`
	Description  string          `db:"description"`
	Difficulty   string          `db:"difficulty"`
	Category     string          `db:"category"`
	EcoPoints    int             `db:"eco_points"`
	DurationDays int             `db:"duration_days"`
	CO2Target    sql.NullFloat64 `db:"co2_target"`
	Participants pq.StringArray  `db:"participants"`
	CreatedAt    time.Time       `db:"created_date"`
}

func (c *Challenge) toModel() *model.Challenge {
	challenge := &model.Challenge{
		ID:           c.ID.String(),
		Title:        c.Title,
		Description:  c.Description,
		Difficulty:   model.Difficulty(c.Difficulty),
		Category:     c.Category,
		EcoPoints:    c.EcoPoints,
		DurationDays: c.DurationDays,
		Participants: nonNil(c.Participants),
		CreatedAt:    c.CreatedAt,
	}
	if c.CO2Target.Valid {
		target := c.CO2Target.Float64
		challenge.CO2Target = &target
	}
	return challenge
}

func (r *Repository) ListChallenges(ctx context.Context) ([]*model.Challenge, error) {
	query, args, err := psql.
		Select("*").
		From("challenges").
		OrderBy("created_date DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []Challenge
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	challenges := make([]*model.Challenge, len(rows))
	for i := range rows {
		challenges[i] = rows[i].toModel()
	}
	return challenges, nil
}

func (r *Repository) GetChallenge(ctx context.Context, id string) (*model.Challenge, error) {
	challengeID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	row, err := r.getChallenge(ctx, r.db, challengeID, false)
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// UpdateChallengeParticipants replaces the participant list of a challenge.
func (r *Repository) UpdateChallengeParticipants(ctx context.Context, id string, participants []string) (*model.Challenge, error) {
	challengeID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var row *Challenge
	err = r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := r.getChallenge(ctx, tx, challengeID, true); err != nil {
			return err
		}

		query, args, err := psql.
			Update("challenges").
			Set("participants", pq.StringArray(nonNil(participants))).
			Where(squirrel.Eq{"id": challengeID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build challenge update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update challenge participants: %w", err)
		}

		row, err = r.getChallenge(ctx, tx, challengeID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

func (r *Repository) getChallenge(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID, forUpdate bool) (*Challenge, error) {
	builder := psql.
		Select("*").
		From("challenges").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var row Challenge
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}
