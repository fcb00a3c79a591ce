package service

import (
	"context"
	"math"

	"ecotrack/internal/catalog"
	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"
)

const (
	// CO2PerTree is kg of CO2 counted as one tree on the profile.
	CO2PerTree = 5.0
	// MilesPerKgCO2 converts saved CO2 into avoided driving miles.
	MilesPerKgCO2 = 2.3
)

type CategoryTotal struct {
	Category model.Category `json:"category"`
	CO2      float64        `json:"co2"`
	Percent  float64        `json:"percent"`
}

type BadgeStatus struct {
	catalog.Badge
	Earned bool `json:"earned"`
}

type Profile struct {
	Email           string              `json:"email"`
	FullName        string              `json:"full_name"`
	Location        string              `json:"location"`
	Progress        *model.UserProgress `json:"progress"`
	Rank            int                 `json:"rank"`
	TreesEquivalent float64             `json:"trees_equivalent"`
	MilesOffset     float64             `json:"miles_offset"`
	Categories      []CategoryTotal     `json:"categories"`
	TodayTotal      float64             `json:"today_total"`
	WeekTotal       float64             `json:"week_total"`
	MonthTotal      float64             `json:"month_total"`
	GoalProgress    float64             `json:"goal_progress"`
	ActivityCount   int                 `json:"activity_count"`
	Badges          []BadgeStatus       `json:"badges"`
}

// BuildProfile computes the profile numbers. Totals use |impact| so offsets count as activity.
func BuildProfile(progress *model.UserProgress, activities []*model.Activity, rank int, today model.Day) *Profile {
	weekStart := today.AddDays(-6)
	monthStart := model.DayOf(today.Time().AddDate(0, -1, 0))

	p := &Profile{
		Email:           progress.UserEmail,
		Progress:        progress,
		Rank:            rank,
		TreesEquivalent: progress.TotalCO2Saved / CO2PerTree,
		MilesOffset:     progress.TotalCO2Saved * MilesPerKgCO2,
		TodayTotal:      AbsoluteImpact(activities, today, today),
		WeekTotal:       AbsoluteImpact(activities, weekStart, today),
		MonthTotal:      AbsoluteImpact(activities, monthStart, today),
		ActivityCount:   len(activities),
	}
	p.GoalProgress = BarPercent(Percent(p.TodayTotal, dailyGoal(progress)))
	p.Categories = categoryTotals(activities)

	for _, b := range catalog.Badges() {
		p.Badges = append(p.Badges, BadgeStatus{
			Badge:  b,
			Earned: progress.HasBadge(b.Name),
		})
	}

	return p
}

func categoryTotals(activities []*model.Activity) []CategoryTotal {
	totals := make(map[model.Category]float64)
	var sum float64
	for _, a := range activities {
		v := math.Abs(a.CO2Impact)
		totals[a.Category] += v
		sum += v
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, c := range model.Categories {
		v, ok := totals[c]
		if !ok {
			continue
		}
		out = append(out, CategoryTotal{Category: c, CO2: v, Percent: Percent(v, sum)})
	}
	return out
}

type ProfileService struct {
	repo     Repository
	progress *ProgressService
	calendar *Calendar
}

func NewProfileService(repo Repository, progress *ProgressService, calendar *Calendar) *ProfileService {
	return &ProfileService{
		repo:     repo,
		progress: progress,
		calendar: calendar,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, session *model.Session) (*Profile, error) {
	log := logger.Logger()

	email := session.UserEmail()
	if email == "" {
		return nil, ErrNotAuthenticated
	}

	progress, err := progressOrDefault(ctx, s.progress, email)
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.ListActivitiesByUser(ctx, email, 0)
	if err != nil {
		log.Error("failed to list activities", zap.String("user_email", email), zap.Error(err))
		return nil, backendErr("list activities", err)
	}

	ranked, err := s.repo.ListProgressByPoints(ctx, 0)
	if err != nil {
		log.Error("failed to list progress", zap.Error(err))
		return nil, backendErr("list progress", err)
	}
	SortByPoints(ranked)

	profile := BuildProfile(progress, activities, RankOf(ranked, email), s.calendar.Today())
	profile.FullName = session.FullName
	profile.Location = session.Location

	return profile, nil
}

func (s *ProfileService) UpdateDailyGoal(ctx context.Context, session *model.Session, goal float64) (*model.UserProgress, error) {
	email := session.UserEmail()
	if email == "" {
		return nil, ErrNotAuthenticated
	}

	p, err := s.progress.UpdateDailyGoal(ctx, email, goal)
	if err != nil {
		return nil, err
	}

	logger.Logger().Info("daily goal updated",
		zap.String("user_email", email),
		zap.Float64("daily_goal", goal))

	return p, nil
}
