package service

import (
	"context"
	"errors"
	"math"

	"ecotrack/internal/catalog"
	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"
)

// ProgressChange is the outcome of folding one activity into a progress row.
type ProgressChange struct {
	Progress     *model.UserProgress
	PointsEarned int
	NewBadges    []string
}

// ApplyActivity recomputes progress after activity was logged on today.
// history is the user's fetched activities; activity is merged in if missing.
// The streak moves at most once per calendar day: later inserts on the same
// day can only reset it when the net total crosses the daily limit.
func ApplyActivity(progress *model.UserProgress, history []*model.Activity, activity *model.Activity, today model.Day) ProgressChange {
	p := progress.Clone()
	all := mergeActivity(history, activity)
	limit := dailyLimit(p)
	todayNet := NetEmissions(all, today, today)
	yesterday := today.AddDays(-1)

	streak := p.CurrentStreak
	switch p.LastActivityDate {
	case today:
		if todayNet > limit {
			streak = 0
		}
	case yesterday:
		yesterdayNet := NetEmissions(all, yesterday, yesterday)
		if yesterdayNet <= limit && todayNet <= limit {
			streak++
		} else {
			streak = 0
		}
	default:
		if todayNet <= limit {
			streak = 1
		} else {
			streak = 0
		}
	}

	p.CurrentStreak = streak
	if streak > p.LongestStreak {
		p.LongestStreak = streak
	}

	if activity.CO2Impact > 0 {
		p.TotalCarbonFootprint += activity.CO2Impact
	} else {
		p.TotalCO2Saved += math.Abs(activity.CO2Impact)
	}

	points := PointsFor(activity.CO2Impact)
	p.EcoPoints += points
	p.LastActivityDate = today

	newBadges := grantBadges(p, map[catalog.BadgeMetric]float64{
		catalog.MetricActivities:    float64(len(all)),
		catalog.MetricLongestStreak: float64(p.LongestStreak),
		catalog.MetricCO2Saved:      p.TotalCO2Saved,
		catalog.MetricEcoPoints:     float64(p.EcoPoints),
	})

	return ProgressChange{
		Progress:     p,
		PointsEarned: points,
		NewBadges:    newBadges,
	}
}

// grantBadges unions newly earned badges into p and returns the additions.
func grantBadges(p *model.UserProgress, metrics map[catalog.BadgeMetric]float64) []string {
	var added []string
	for _, name := range catalog.EarnedBadges(metrics) {
		if !p.HasBadge(name) {
			p.Badges = append(p.Badges, name)
			added = append(added, name)
		}
	}
	return added
}

// ProgressService is the single writer of UserProgress rows.
type ProgressService struct {
	progress   ProgressRepository
	activities ActivityRepository
	cache      LeaderboardCache
	calendar   *Calendar
	locks      *userLocks
}

// NewProgressService wires the aggregator. cache may be nil.
func NewProgressService(progress ProgressRepository, activities ActivityRepository, cache LeaderboardCache, calendar *Calendar) *ProgressService {
	return &ProgressService{
		progress:   progress,
		activities: activities,
		cache:      cache,
		calendar:   calendar,
		locks:      newUserLocks(),
	}
}

// GetProgress returns the user's row, or ErrProgressNotFound.
func (s *ProgressService) GetProgress(ctx context.Context, email string) (*model.UserProgress, error) {
	p, err := s.progress.GetProgressByUser(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, backendErr("get progress", err)
	}
	return p, nil
}

// OnActivityRecorded folds a durably created activity into the user's progress.
// A user without a progress row is left alone and a nil change is returned.
func (s *ProgressService) OnActivityRecorded(ctx context.Context, email string, activity *model.Activity) (*ProgressChange, error) {
	unlock := s.locks.Lock(email)
	defer unlock()

	current, err := s.GetProgress(ctx, email)
	if err != nil {
		if errors.Is(err, ErrProgressNotFound) {
			logger.Logger().Info("no progress row, skipping aggregation", zap.String("user_email", email))
			return nil, nil
		}
		return nil, err
	}

	history, err := s.activities.ListActivitiesByUser(ctx, email, ActivityHistoryLimit)
	if err != nil {
		return nil, backendErr("list activities", err)
	}

	change := ApplyActivity(current, history, activity, s.calendar.Today())

	updated, err := s.save(ctx, change.Progress)
	if err != nil {
		return nil, err
	}
	change.Progress = updated

	logger.Logger().Debug("progress updated",
		zap.String("user_email", email),
		zap.Int("points_earned", change.PointsEarned),
		zap.Int("current_streak", updated.CurrentStreak),
		zap.Strings("new_badges", change.NewBadges))

	return &change, nil
}

// AwardPoints adds points directly to eco_points without touching the streak.
// Returns nil without error when the user has no progress row.
func (s *ProgressService) AwardPoints(ctx context.Context, email string, points int) (*model.UserProgress, error) {
	return s.mutate(ctx, email, func(p *model.UserProgress) {
		p.EcoPoints += points
		grantBadges(p, map[catalog.BadgeMetric]float64{
			catalog.MetricEcoPoints: float64(p.EcoPoints),
		})
	})
}

// AwardBadges evaluates the given metrics and stores any newly earned badges.
func (s *ProgressService) AwardBadges(ctx context.Context, email string, metrics map[catalog.BadgeMetric]float64) (*model.UserProgress, error) {
	return s.mutate(ctx, email, func(p *model.UserProgress) {
		grantBadges(p, metrics)
	})
}

// UpdateDailyGoal stores a new daily goal; the row must exist.
func (s *ProgressService) UpdateDailyGoal(ctx context.Context, email string, goal float64) (*model.UserProgress, error) {
	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return nil, ErrInvalidGoal
	}

	p, err := s.mutate(ctx, email, func(p *model.UserProgress) {
		p.DailyGoal = goal
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProgressNotFound
	}
	return p, nil
}

func (s *ProgressService) mutate(ctx context.Context, email string, fn func(p *model.UserProgress)) (*model.UserProgress, error) {
	unlock := s.locks.Lock(email)
	defer unlock()

	current, err := s.GetProgress(ctx, email)
	if err != nil {
		if errors.Is(err, ErrProgressNotFound) {
			return nil, nil
		}
		return nil, err
	}

	next := current.Clone()
	fn(next)

	return s.save(ctx, next)
}

func (s *ProgressService) save(ctx context.Context, p *model.UserProgress) (*model.UserProgress, error) {
	updated, err := s.progress.UpdateProgress(ctx, p)
	if err != nil {
		return nil, backendErr("update progress", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Logger().Warn("failed to invalidate leaderboard cache", zap.Error(err))
		}
	}

	return updated, nil
}
