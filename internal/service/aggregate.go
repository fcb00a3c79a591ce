package service

import (
	"math"
	"time"

	"ecotrack/internal/model"
)

// Calendar turns the wall clock into calendar days in the configured time zone.
type Calendar struct {
	now Clock
	loc *time.Location
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{now: time.Now, loc: loc}
}

func (c *Calendar) Today() model.Day {
	return model.DayOf(c.now().In(c.loc))
}

// PointsFor is the EcoPoints award for one logged activity: floor(|impact|×10) for offsets, 5 otherwise.
func PointsFor(impact float64) int {
	if impact < 0 {
		return int(math.Floor(math.Abs(impact) * 10))
	}
	return 5
}

// NetEmissions sums signed impacts of activities dated within [from, to].
func NetEmissions(activities []*model.Activity, from, to model.Day) float64 {
	var sum float64
	for _, a := range activities {
		if a.Date.Within(from, to) {
			sum += a.CO2Impact
		}
	}
	return sum
}

// Reductions sums |impact| of offsetting activities dated within [from, to].
func Reductions(activities []*model.Activity, from, to model.Day) float64 {
	var sum float64
	for _, a := range activities {
		if a.IsOffset() && a.Date.Within(from, to) {
			sum += math.Abs(a.CO2Impact)
		}
	}
	return sum
}

// AbsoluteImpact sums |impact| of every activity dated within [from, to].
func AbsoluteImpact(activities []*model.Activity, from, to model.Day) float64 {
	var sum float64
	for _, a := range activities {
		if a.Date.Within(from, to) {
			sum += math.Abs(a.CO2Impact)
		}
	}
	return sum
}

// PositiveByCategory sums only emitting activities per category; offsets never appear.
func PositiveByCategory(activities []*model.Activity, from, to model.Day) map[model.Category]float64 {
	totals := make(map[model.Category]float64)
	for _, a := range activities {
		if a.CO2Impact > 0 && a.Date.Within(from, to) {
			totals[a.Category] += a.CO2Impact
		}
	}
	return totals
}

// Percent is value/limit×100, unclamped. A non-positive limit yields 0.
func Percent(value, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return value / limit * 100
}

// BarPercent clamps a percentage to 100 for progress bars. Negative values pass through.
func BarPercent(p float64) float64 {
	return math.Min(p, 100)
}

// mergeActivity returns history with activity included once, matched by id.
func mergeActivity(history []*model.Activity, activity *model.Activity) []*model.Activity {
	all := make([]*model.Activity, 0, len(history)+1)
	found := false
	for _, a := range history {
		if activity.ID != "" && a.ID == activity.ID {
			found = true
		}
		all = append(all, a)
	}
	if !found {
		all = append(all, activity)
	}
	return all
}

func dailyLimit(p *model.UserProgress) float64 {
	if p.DailyCarbonLimit <= 0 {
		return model.DefaultDailyCarbonLimit
	}
	return p.DailyCarbonLimit
}

func weeklyLimit(p *model.UserProgress) float64 {
	if p.WeeklyCarbonLimit <= 0 {
		return model.DefaultWeeklyCarbonLimit
	}
	return p.WeeklyCarbonLimit
}

func dailyGoal(p *model.UserProgress) float64 {
	if p.DailyGoal <= 0 {
		return model.DefaultDailyGoal
	}
	return p.DailyGoal
}
