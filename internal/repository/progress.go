package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ecotrack/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var progressColumns = []string{
	"id", "user_email", "eco_points", "total_carbon_footprint", "total_co2_saved",
	"current_streak", "longest_streak", "last_activity_date", "daily_carbon_limit",
	"weekly_carbon_limit", "daily_goal", "badges", "version",
}

type UserProgress struct {
	ID                   uuid.UUID      `db:"id"`
	UserEmail            string         `db:"user_email"`
	EcoPoints            int            `db:"eco_points"`
	TotalCarbonFootprint float64        `db:"total_carbon_footprint"`
	TotalCO2Saved        float64        `db:"total_co2_saved"`
	CurrentStreak        int            `db:"current_streak"`
	LongestStreak        int            `db:"longest_streak"`
	LastActivityDate     sql.NullTime   `db:"last_activity_date"`
	DailyCarbonLimit     float64        `db:"daily_carbon_limit"`
	WeeklyCarbonLimit    float64        `db:"weekly_carbon_limit"`
	DailyGoal            float64        `db:"daily_goal"`
	Badges               pq.StringArray `db:"badges"`
	Version              int            `db:"version"`
}

func (p *UserProgress) toModel() *model.UserProgress {
	var last model.Day
	if p.LastActivityDate.Valid {
		last = model.DayOf(p.LastActivityDate.Time)
	}

	return &model.UserProgress{
		ID:                   p.ID.String(),
		UserEmail:            p.UserEmail,
		EcoPoints:            p.EcoPoints,
		TotalCarbonFootprint: p.TotalCarbonFootprint,
		TotalCO2Saved:        p.TotalCO2Saved,
		CurrentStreak:        p.CurrentStreak,
		LongestStreak:        p.LongestStreak,
		LastActivityDate:     last,
		DailyCarbonLimit:     p.DailyCarbonLimit,
		WeeklyCarbonLimit:    p.WeeklyCarbonLimit,
		DailyGoal:            p.DailyGoal,
		Badges:               nonNil(p.Badges),
		Version:              p.Version,
	}
}

func (r *Repository) GetProgressByUser(ctx context.Context, email string) (*model.UserProgress, error) {
	query, args, err := psql.
		Select(progressColumns...).
		From("user_progress").
		Where(squirrel.Eq{"user_email": email}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row UserProgress
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel(), nil
}

// UpdateProgress writes the row only if its version still matches, then bumps the version.
func (r *Repository) UpdateProgress(ctx context.Context, progress *model.UserProgress) (*model.UserProgress, error) {
	id, err := parseID(progress.ID)
	if err != nil {
		return nil, err
	}

	var lastActivity sql.NullTime
	if !progress.LastActivityDate.IsZero() {
		lastActivity = sql.NullTime{Time: progress.LastActivityDate.Time(), Valid: true}
	}

	var row UserProgress
	err = r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := psql.
			Update("user_progress").
			SetMap(map[string]interface{}{
				"eco_points":             progress.EcoPoints,
				"total_carbon_footprint": progress.TotalCarbonFootprint,
				"total_co2_saved":        progress.TotalCO2Saved,
				"current_streak":         progress.CurrentStreak,
				"longest_streak":         progress.LongestStreak,
				"last_activity_date":     lastActivity,
				"daily_carbon_limit":     progress.DailyCarbonLimit,
				"weekly_carbon_limit":    progress.WeeklyCarbonLimit,
				"daily_goal":             progress.DailyGoal,
				"badges":                 pq.StringArray(nonNil(progress.Badges)),
				"version":                squirrel.Expr("version + 1"),
			}).
			Where(squirrel.Eq{"id": id, "version": progress.Version}).
			Suffix("RETURNING " + strings.Join(progressColumns, ", ")).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build progress update query: %w", err)
		}

		err = tx.GetContext(ctx, &row, query, args...)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to update progress: %w", err)
		}

		var exists bool
		if err := tx.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM user_progress WHERE id = $1)", id); err != nil {
			return err
		}
		if exists {
			return ErrVersionConflict
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

func (r *Repository) ListProgressByPoints(ctx context.Context, limit int) ([]*model.UserProgress, error) {
	builder := psql.
		Select(progressColumns...).
		From("user_progress").
		OrderBy("eco_points DESC", "user_email")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []UserProgress
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	list := make([]*model.UserProgress, len(rows))
	for i := range rows {
		list[i] = rows[i].toModel()
	}
	return list, nil
}
