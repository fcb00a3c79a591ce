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

type VolunteerEvent struct {
	ID                uuid.UUID      `db:"id"`
	Title             string         `db:"title"`
	Description       string         `db:"description"`
	EventType         string         `db:"event_type"`
	Location          string         `db:"location"`
	Region            string         `db:"region"`
	Date              time.Time      `db:"date"`
	Time              string         `db:"time"`
	DurationHours     float64        `db:"duration_hours"`
	MaxParticipants   int            `db:"max_participants"`
	RegisteredUsers   pq.StringArray `db:"registered_users"`
	ImpactDescription string         `db:"impact_description"`
	EcoPointsReward   int            `db:"eco_points_reward"`
}

func (e *VolunteerEvent) toModel() *model.VolunteerEvent {
	return &model.VolunteerEvent{
		ID:                e.ID.String(),
		Title:             e.Title,
		Description:       e.Description,
		EventType:         e.EventType,
		Location:          e.Location,
		Region:            e.Region,
		Date:              model.DayOf(e.Date),
		Time:              e.Time,
		DurationHours:     e.DurationHours,
		MaxParticipants:   e.MaxParticipants,
		RegisteredUsers:   nonNil(e.RegisteredUsers),
		ImpactDescription: e.ImpactDescription,
		EcoPointsReward:   e.EcoPointsReward,
	}
}

func (r *Repository) ListEvents(ctx context.Context) ([]*model.VolunteerEvent, error) {
	query, args, err := psql.
		Select("*").
		From("volunteer_events").
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []VolunteerEvent
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	events := make([]*model.VolunteerEvent, len(rows))
	for i := range rows {
		events[i] = rows[i].toModel()
	}
	return events, nil
}

func (r *Repository) GetEvent(ctx context.Context, id string) (*model.VolunteerEvent, error) {
	eventID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	row, err := r.getEvent(ctx, r.db, eventID, false)
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// UpdateEventRegistrations replaces the registered users. Capacity is enforced by the caller
// and re-checked here under the row lock.
func (r *Repository) UpdateEventRegistrations(ctx context.Context, id string, registeredUsers []string) (*model.VolunteerEvent, error) {
	eventID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var row *VolunteerEvent
	err = r.Transaction(ctx, func(tx *sqlx.Tx) error {
		current, err := r.getEvent(ctx, tx, eventID, true)
		if err != nil {
			return err
		}
		if current.MaxParticipants > 0 && len(registeredUsers) > current.MaxParticipants {
			return fmt.Errorf("event %s: %d registrations exceed capacity %d", eventID, len(registeredUsers), current.MaxParticipants)
		}

		query, args, err := psql.
			Update("volunteer_events").
			Set("registered_users", pq.StringArray(nonNil(registeredUsers))).
			Where(squirrel.Eq{"id": eventID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build event update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update event registrations: %w", err)
		}

		row, err = r.getEvent(ctx, tx, eventID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

func (r *Repository) getEvent(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID, forUpdate bool) (*VolunteerEvent, error) {
	builder := psql.
		Select("*").
		From("volunteer_events").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var row VolunteerEvent
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}
