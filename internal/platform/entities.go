package platform

import (
	"context"

	"ecotrack/internal/model"
)

const (
	entityActivity       = "Activity"
	entityUserProgress   = "UserProgress"
	entityChallenge      = "Challenge"
	entityTriviaQuestion = "TriviaQuestion"
	entityVolunteerEvent = "VolunteerEvent"
)

// EntityStore maps the typed repository operations onto the generic entity API.
type EntityStore struct {
	client *Client
}

func NewEntityStore(client *Client) *EntityStore {
	return &EntityStore{client: client}
}

// CreateActivity stamps created_by explicitly. Entity calls use the service key, so the
// platform cannot infer the acting user.
func (s *EntityStore) CreateActivity(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	fields := map[string]any{
		"created_by":  activity.CreatedBy,
		"category":    activity.Category,
		"subcategory": activity.Subcategory,
		"description": activity.Description,
		"co2_impact":  activity.CO2Impact,
		"quantity":    activity.Quantity,
		"unit":        activity.Unit,
		"date":        activity.Date,
	}

	var created model.Activity
	if err := s.client.Create(ctx, entityActivity, fields, &created); err != nil {
		return nil, err
	}
	if created.CreatedBy == "" {
		created.CreatedBy = activity.CreatedBy
	}
	return &created, nil
}

func (s *EntityStore) ListActivitiesByUser(ctx context.Context, email string, limit int) ([]*model.Activity, error) {
	var activities []*model.Activity
	err := s.client.Filter(ctx, entityActivity, map[string]any{"created_by": email}, "-created_date", limit, &activities)
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *EntityStore) GetProgressByUser(ctx context.Context, email string) (*model.UserProgress, error) {
	var rows []*model.UserProgress
	if err := s.client.Filter(ctx, entityUserProgress, map[string]any{"user_email": email}, "", 1, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	return rows[0], nil
}

// UpdateProgress writes every mutable field. The platform has no version check.
func (s *EntityStore) UpdateProgress(ctx context.Context, progress *model.UserProgress) (*model.UserProgress, error) {
	fields := map[string]any{
		"eco_points":             progress.EcoPoints,
		"total_carbon_footprint": progress.TotalCarbonFootprint,
		"total_co2_saved":        progress.TotalCO2Saved,
		"current_streak":         progress.CurrentStreak,
		"longest_streak":         progress.LongestStreak,
		"last_activity_date":     progress.LastActivityDate,
		"daily_carbon_limit":     progress.DailyCarbonLimit,
		"weekly_carbon_limit":    progress.WeeklyCarbonLimit,
		"daily_goal":             progress.DailyGoal,
		"badges":                 progress.Badges,
	}

	var updated model.UserProgress
	if err := s.client.Update(ctx, entityUserProgress, progress.ID, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *EntityStore) ListProgressByPoints(ctx context.Context, limit int) ([]*model.UserProgress, error) {
	var rows []*model.UserProgress
	if err := s.client.List(ctx, entityUserProgress, "-eco_points", limit, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EntityStore) ListChallenges(ctx context.Context) ([]*model.Challenge, error) {
	var challenges []*model.Challenge
	if err := s.client.List(ctx, entityChallenge, "-created_date", 0, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (s *EntityStore) GetChallenge(ctx context.Context, id string) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := s.client.Get(ctx, entityChallenge, id, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *EntityStore) UpdateChallengeParticipants(ctx context.Context, id string, participants []string) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := s.client.Update(ctx, entityChallenge, id, map[string]any{"participants": participants}, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *EntityStore) ListTriviaQuestions(ctx context.Context) ([]*model.TriviaQuestion, error) {
	var questions []*model.TriviaQuestion
	if err := s.client.List(ctx, entityTriviaQuestion, "", 0, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *EntityStore) ListEvents(ctx context.Context) ([]*model.VolunteerEvent, error) {
	var events []*model.VolunteerEvent
	if err := s.client.List(ctx, entityVolunteerEvent, "-date", 0, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EntityStore) GetEvent(ctx context.Context, id string) (*model.VolunteerEvent, error) {
	var event model.VolunteerEvent
	if err := s.client.Get(ctx, entityVolunteerEvent, id, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EntityStore) UpdateEventRegistrations(ctx context.Context, id string, registeredUsers []string) (*model.VolunteerEvent, error) {
	var event model.VolunteerEvent
	if err := s.client.Update(ctx, entityVolunteerEvent, id, map[string]any{"registered_users": registeredUsers}, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
