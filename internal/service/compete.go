package service

import (
	"context"
	"errors"
	"sort"

	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"
)

const LeaderboardSize = 10

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserEmail     string  `json:"user_email"`
	EcoPoints     int     `json:"eco_points"`
	CurrentStreak int     `json:"current_streak"`
	TotalCO2Saved float64 `json:"total_co2_saved"`
	IsCurrentUser bool    `json:"is_current_user"`
}

type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
	// Rank is the caller's 1-based position over all rows, 0 when absent or anonymous.
	Rank  int `json:"rank"`
	Total int `json:"total"`
}

// SortByPoints orders rows by eco_points descending, keeping the backend order for ties.
func SortByPoints(rows []*model.UserProgress) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EcoPoints > rows[j].EcoPoints
	})
}

// RankOf is 1 + the index of the first row owned by email, or 0.
func RankOf(rows []*model.UserProgress, email string) int {
	if email == "" {
		return 0
	}
	for i, r := range rows {
		if r.UserEmail == email {
			return i + 1
		}
	}
	return 0
}

// BuildLeaderboard keeps the top LeaderboardSize rows of an already sorted list.
func BuildLeaderboard(rows []*model.UserProgress, email string) *Leaderboard {
	lb := &Leaderboard{
		Entries: make([]LeaderboardEntry, 0, LeaderboardSize),
		Rank:    RankOf(rows, email),
		Total:   len(rows),
	}
	for i, r := range rows {
		if i == LeaderboardSize {
			break
		}
		lb.Entries = append(lb.Entries, LeaderboardEntry{
			Rank:          i + 1,
			UserEmail:     r.UserEmail,
			EcoPoints:     r.EcoPoints,
			CurrentStreak: r.CurrentStreak,
			TotalCO2Saved: r.TotalCO2Saved,
			IsCurrentUser: email != "" && r.UserEmail == email,
		})
	}
	return lb
}

type ChallengeView struct {
	*model.Challenge
	Joined           bool `json:"joined"`
	ParticipantCount int  `json:"participant_count"`
}

type CompeteService struct {
	repo  Repository
	cache LeaderboardCache
	locks *userLocks
}

// NewCompeteService builds the compete service. cache may be nil.
func NewCompeteService(repo Repository, cache LeaderboardCache) *CompeteService {
	return &CompeteService{
		repo:  repo,
		cache: cache,
		locks: newUserLocks(),
	}
}

func (s *CompeteService) GetLeaderboard(ctx context.Context, session *model.Session) (*Leaderboard, error) {
	rows, err := s.rankedProgress(ctx)
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(rows, session.UserEmail()), nil
}

func (s *CompeteService) rankedProgress(ctx context.Context) ([]*model.UserProgress, error) {
	log := logger.Logger()

	if s.cache != nil {
		rows, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn("leaderboard cache read failed", zap.Error(err))
		} else if ok {
			return rows, nil
		}
	}

	rows, err := s.repo.ListProgressByPoints(ctx, 0)
	if err != nil {
		log.Error("failed to list progress", zap.Error(err))
		return nil, backendErr("list progress", err)
	}
	SortByPoints(rows)

	if s.cache != nil {
		if err := s.cache.Set(ctx, rows); err != nil {
			log.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}

	return rows, nil
}

func (s *CompeteService) ListChallenges(ctx context.Context, session *model.Session) ([]*ChallengeView, error) {
	challenges, err := s.repo.ListChallenges(ctx)
	if err != nil {
		logger.Logger().Error("failed to list challenges", zap.Error(err))
		return nil, backendErr("list challenges", err)
	}

	email := session.UserEmail()
	views := make([]*ChallengeView, 0, len(challenges))
	for _, c := range challenges {
		views = append(views, &ChallengeView{
			Challenge:        c,
			Joined:           email != "" && c.HasParticipant(email),
			ParticipantCount: len(c.Participants),
		})
	}
	return views, nil
}

// JoinChallenge adds the caller to the participants. Joining twice is a no-op.
func (s *CompeteService) JoinChallenge(ctx context.Context, session *model.Session, challengeID string) (*model.Challenge, error) {
	email := session.UserEmail()
	if email == "" {
		return nil, ErrNotAuthenticated
	}

	unlock := s.locks.Lock(challengeID)
	defer unlock()

	challenge, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, backendErr("get challenge", err)
	}

	if challenge.HasParticipant(email) {
		return challenge, nil
	}

	participants := append(append([]string(nil), challenge.Participants...), email)
	updated, err := s.repo.UpdateChallengeParticipants(ctx, challengeID, participants)
	if err != nil {
		logger.Logger().Error("failed to join challenge",
			zap.String("challenge_id", challengeID),
			zap.String("user_email", email),
			zap.Error(err))
		return nil, backendErr("update challenge", err)
	}

	return updated, nil
}
