package service

import (
	"context"
	"errors"

	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"
)

// TreeAbsorptionPerDay is kg of CO2 one tree absorbs in a day.
const TreeAbsorptionPerDay = 21.0

const recentActivitiesShown = 5

type CategoryShare struct {
	Category model.Category `json:"category"`
	CO2      float64        `json:"co2"`
	Percent  float64        `json:"percent"`
}

type Dashboard struct {
	Today            model.Day           `json:"today"`
	TodayNet         float64             `json:"today_net"`
	WeekNet          float64             `json:"week_net"`
	TodayReductions  float64             `json:"today_reductions"`
	WeekReductions   float64             `json:"week_reductions"`
	DailyLimit       float64             `json:"daily_limit"`
	WeeklyLimit      float64             `json:"weekly_limit"`
	DailyPercent     float64             `json:"daily_percent"`
	DailyBar         float64             `json:"daily_bar"`
	WeeklyPercent    float64             `json:"weekly_percent"`
	WeeklyBar        float64             `json:"weekly_bar"`
	UnderDailyLimit  bool                `json:"under_daily_limit"`
	Remaining        float64             `json:"remaining"`
	TreesNeeded      float64             `json:"trees_needed"`
	Categories       []CategoryShare     `json:"categories"`
	Progress         *model.UserProgress `json:"progress"`
	RecentActivities []*model.Activity   `json:"recent_activities"`
}

// BuildDashboard derives every dashboard number from the progress row and the fetched activities.
// The week is the seven days ending today.
func BuildDashboard(progress *model.UserProgress, activities []*model.Activity, today model.Day) *Dashboard {
	weekStart := today.AddDays(-6)
	daily := dailyLimit(progress)
	weekly := weeklyLimit(progress)

	d := &Dashboard{
		Today:           today,
		TodayNet:        NetEmissions(activities, today, today),
		WeekNet:         NetEmissions(activities, weekStart, today),
		TodayReductions: Reductions(activities, today, today),
		WeekReductions:  Reductions(activities, weekStart, today),
		DailyLimit:      daily,
		WeeklyLimit:     weekly,
		Progress:        progress,
	}

	d.DailyPercent = Percent(d.TodayNet, daily)
	d.DailyBar = BarPercent(d.DailyPercent)
	d.WeeklyPercent = Percent(d.WeekNet, weekly)
	d.WeeklyBar = BarPercent(d.WeeklyPercent)
	d.UnderDailyLimit = d.TodayNet < daily
	d.Remaining = daily - d.TodayNet
	d.TreesNeeded = d.TodayNet / TreeAbsorptionPerDay
	d.Categories = categoryShares(PositiveByCategory(activities, weekStart, today))

	n := len(activities)
	if n > recentActivitiesShown {
		n = recentActivitiesShown
	}
	d.RecentActivities = activities[:n]

	return d
}

func categoryShares(totals map[model.Category]float64) []CategoryShare {
	var sum float64
	for _, v := range totals {
		sum += v
	}

	shares := make([]CategoryShare, 0, len(totals))
	for _, c := range model.Categories {
		v, ok := totals[c]
		if !ok {
			continue
		}
		shares = append(shares, CategoryShare{
			Category: c,
			CO2:      v,
			Percent:  Percent(v, sum),
		})
	}
	return shares
}

type DashboardService struct {
	repo     ActivityRepository
	progress *ProgressService
	calendar *Calendar
}

func NewDashboardService(repo ActivityRepository, progress *ProgressService, calendar *Calendar) *DashboardService {
	return &DashboardService{
		repo:     repo,
		progress: progress,
		calendar: calendar,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context, session *model.Session) (*Dashboard, error) {
	email := session.UserEmail()
	if email == "" {
		return nil, ErrNotAuthenticated
	}

	progress, err := progressOrDefault(ctx, s.progress, email)
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.ListActivitiesByUser(ctx, email, ActivityHistoryLimit)
	if err != nil {
		logger.Logger().Error("failed to list activities", zap.String("user_email", email), zap.Error(err))
		return nil, backendErr("list activities", err)
	}

	return BuildDashboard(progress, activities, s.calendar.Today()), nil
}

// progressOrDefault substitutes the read-side defaults for a user without a row.
func progressOrDefault(ctx context.Context, progress *ProgressService, email string) (*model.UserProgress, error) {
	p, err := progress.GetProgress(ctx, email)
	if err != nil {
		if errors.Is(err, ErrProgressNotFound) {
			return model.DefaultProgress(email), nil
		}
		logger.Logger().Error("failed to get progress", zap.String("user_email", email), zap.Error(err))
		return nil, err
	}
	return p, nil
}
