package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"ecotrack/internal/catalog"
	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"
)

type LogActivityInput struct {
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Quantity    float64 `json:"quantity"`
	Note        string  `json:"description"`
}

type ImpactPreview struct {
	Category     model.Category `json:"category"`
	Subcategory  string         `json:"subcategory"`
	Quantity     float64        `json:"quantity"`
	Unit         string         `json:"unit"`
	Description  string         `json:"factor_description"`
	CO2Impact    float64        `json:"co2_impact"`
	PointsEarned int            `json:"points_earned"`
	IsOffset     bool           `json:"is_offset"`
}

type RecordResult struct {
	Activity     *model.Activity     `json:"activity"`
	PointsEarned int                 `json:"points_earned"`
	Progress     *model.UserProgress `json:"progress"`
	NewBadges    []string            `json:"new_badges"`
}

type ActivityService struct {
	activities ActivityRepository
	progress   *ProgressService
	calendar   *Calendar
}

func NewActivityService(activities ActivityRepository, progress *ProgressService, calendar *Calendar) *ActivityService {
	return &ActivityService{
		activities: activities,
		progress:   progress,
		calendar:   calendar,
	}
}

// Preview computes the impact of a selection without touching the backend.
func (s *ActivityService) Preview(category, subcategory string, quantity float64) (*ImpactPreview, error) {
	c, err := model.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	if !(quantity > 0) || math.IsInf(quantity, 0) {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidSelection)
	}

	factor, ok := catalog.LookupFactor(c, subcategory)
	if !ok {
		return nil, fmt.Errorf("%w: unknown subcategory %q for %s", ErrInvalidSelection, subcategory, c)
	}

	impact := factor.CO2PerUnit * quantity

	return &ImpactPreview{
		Category:     c,
		Subcategory:  factor.Name,
		Quantity:     quantity,
		Unit:         factor.Unit,
		Description:  factor.Description,
		CO2Impact:    impact,
		PointsEarned: PointsFor(impact),
		IsOffset:     impact < 0,
	}, nil
}

// Record validates the selection, creates the activity and folds it into the user's progress.
func (s *ActivityService) Record(ctx context.Context, session *model.Session, in LogActivityInput) (*RecordResult, error) {
	if session.UserEmail() == "" {
		return nil, ErrNotAuthenticated
	}

	preview, err := s.Preview(in.Category, in.Subcategory, in.Quantity)
	if err != nil {
		return nil, err
	}

	description := in.Note
	if description == "" {
		description = fmt.Sprintf("%s - %s %s", preview.Subcategory, formatQuantity(in.Quantity), preview.Unit)
	}

	return s.record(ctx, session, &model.Activity{
		Category:    preview.Category,
		Subcategory: preview.Subcategory,
		Description: description,
		CO2Impact:   preview.CO2Impact,
		Quantity:    in.Quantity,
		Unit:        preview.Unit,
	})
}

// QuickOffset records one of the canned offset actions with quantity 1.
func (s *ActivityService) QuickOffset(ctx context.Context, session *model.Session, actionName string) (*RecordResult, error) {
	if session.UserEmail() == "" {
		return nil, ErrNotAuthenticated
	}

	action, ok := catalog.LookupOffset(actionName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown offset action %q", ErrInvalidSelection, actionName)
	}

	return s.record(ctx, session, &model.Activity{
		Category:    action.Category,
		Subcategory: action.Subcategory,
		Description: action.Description,
		CO2Impact:   action.Impact,
		Quantity:    1,
		Unit:        catalog.OffsetUnit,
	})
}

func (s *ActivityService) record(ctx context.Context, session *model.Session, activity *model.Activity) (*RecordResult, error) {
	log := logger.Logger()

	activity.CreatedBy = session.Email
	activity.Date = s.calendar.Today()

	created, err := s.activities.CreateActivity(ctx, activity)
	if err != nil {
		log.Error("failed to create activity",
			zap.String("user_email", session.Email),
			zap.String("subcategory", activity.Subcategory),
			zap.Error(err))
		return nil, backendErr("create activity", err)
	}

	result := &RecordResult{
		Activity:     created,
		PointsEarned: PointsFor(created.CO2Impact),
	}

	// The activity is already stored; an aggregation failure leaves Progress nil.
	change, err := s.progress.OnActivityRecorded(ctx, session.Email, created)
	if err != nil {
		log.Error("failed to update progress after activity",
			zap.String("user_email", session.Email),
			zap.String("activity_id", created.ID),
			zap.Error(err))
		return result, nil
	}
	if change != nil {
		result.Progress = change.Progress
		result.NewBadges = change.NewBadges
	}

	return result, nil
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
