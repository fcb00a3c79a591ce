package repository

import (
	"context"
	"fmt"
	"time"

	"ecotrack/internal/model"

	"github.com/google/uuid"
)

var activityColumns = []string{
	"id", "created_by", "category", "subcategory", "description",
	"co2_impact", "quantity", "unit", "date", "created_date",
}

type Activity struct {
	ID          uuid.UUID `db:"id"`
	CreatedBy   string    `db:"created_by"`
	Category    string    `db:"category"`
	Subcategory string    `db:"subcategory"`
	Description string    `db:"description"`
	CO2Impact   float64   `db:"co2_impact"`
	Quantity    float64   `db:"quantity"`
	Unit        string    `db:"unit"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_date"`
}

func (a *Activity) toModel() (*model.Activity, error) {
	category, err := model.ParseCategory(a.Category)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", a.ID, err)
	}

	return &model.Activity{
		ID:          a.ID.String(),
		CreatedBy:   a.CreatedBy,
		Category:    category,
		Subcategory: a.Subcategory,
		Description: a.Description,
		CO2Impact:   a.CO2Impact,
		Quantity:    a.Quantity,
		Unit:        a.Unit,
		Date:        model.DayOf(a.Date),
		CreatedAt:   a.CreatedAt,
	}, nil
}

func (r *Repository) CreateActivity(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	if !activity.Category.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(activity.Category))
	}

	query, args, err := psql.
		Insert("activities").
		SetMap(map[string]interface{}{
			"id":           uuid.New(),
			"created_by":   activity.CreatedBy,
			"category":     activity.Category.String(),
			"subcategory":  activity.Subcategory,
			"description":  activity.Description,
			"co2_impact":   activity.CO2Impact,
			"quantity":     activity.Quantity,
			"unit":         activity.Unit,
			"date":         activity.Date.Time(),
			"created_date": time.Now().UTC(),
		}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build activity insert query: %w", err)
	}

	var row Activity
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert activity: %w", err)
	}

	return row.toModel()
}

func (r *Repository) ListActivitiesByUser(ctx context.Context, email string, limit int) ([]*model.Activity, error) {
	builder := psql.
		Select(activityColumns...).
		From("activities").
		Where("created_by = ?", email).
		OrderBy("created_date DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []Activity
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	activities := make([]*model.Activity, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	return activities, nil
}
