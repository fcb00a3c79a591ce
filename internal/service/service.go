package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecotrack/internal/model"
)

var (
	ErrNotAuthenticated     = model.ErrNotAuthenticated
	ErrInvalidSelection     = errors.New("invalid activity selection")
	ErrBackendRequestFailed = errors.New("backend request failed")

	ErrProgressNotFound  = errors.New("user progress not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrEventNotFound     = errors.New("volunteer event not found")
	ErrEventFull         = errors.New("volunteer event is full")
	ErrInvalidGoal       = errors.New("daily goal must be greater than zero")
	ErrEmptyMessage      = errors.New("message is empty")

	ErrNoQuestions      = errors.New("no trivia questions available")
	ErrNoActiveQuestion = errors.New("no active trivia question")
	ErrAlreadyAnswered  = errors.New("question already answered")
)

// ActivityHistoryLimit bounds how many recent activities are fetched for aggregation.
const ActivityHistoryLimit = 100

// backendErr marks err as a backend failure while keeping it inspectable with errors.Is.
func backendErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrBackendRequestFailed, err)
}

type Clock func() time.Time

// ActivityRepository lists newest first; a limit of 0 or less means no limit.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity *model.Activity) (*model.Activity, error)
	ListActivitiesByUser(ctx context.Context, email string, limit int) ([]*model.Activity, error)
}

type ProgressRepository interface {
	GetProgressByUser(ctx context.Context, email string) (*model.UserProgress, error)
	UpdateProgress(ctx context.Context, progress *model.UserProgress) (*model.UserProgress, error)
	ListProgressByPoints(ctx context.Context, limit int) ([]*model.UserProgress, error)
}

type ChallengeRepository interface {
	ListChallenges(ctx context.Context) ([]*model.Challenge, error)
	GetChallenge(ctx context.Context, id string) (*model.Challenge, error)
	UpdateChallengeParticipants(ctx context.Context, id string, participants []string) (*model.Challenge, error)
}

type TriviaRepository interface {
	ListTriviaQuestions(ctx context.Context) ([]*model.TriviaQuestion, error)
}

type EventRepository interface {
	ListEvents(ctx context.Context) ([]*model.VolunteerEvent, error)
	GetEvent(ctx context.Context, id string) (*model.VolunteerEvent, error)
	UpdateEventRegistrations(ctx context.Context, id string, registeredUsers []string) (*model.VolunteerEvent, error)
}

// Repository is the full entity store; both the hosted platform and PostgreSQL adapters implement it.
type Repository interface {
	ActivityRepository
	ProgressRepository
	ChallengeRepository
	TriviaRepository
	EventRepository
}

type ProfileGateway interface {
	CurrentUser(ctx context.Context, token string) (*model.User, error)
	UpdateCurrentUser(ctx context.Context, token string, fields map[string]any) (*model.User, error)
}

type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts model.GenerateOptions) (string, error)
}

// LeaderboardCache holds the sorted progress rows between progress writes.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]*model.UserProgress, bool, error)
	Set(ctx context.Context, rows []*model.UserProgress) error
	Invalidate(ctx context.Context) error
}

type ActivityServiceI interface {
	Preview(category, subcategory string, quantity float64) (*ImpactPreview, error)
	Record(ctx context.Context, session *model.Session, in LogActivityInput) (*RecordResult, error)
	QuickOffset(ctx context.Context, session *model.Session, actionName string) (*RecordResult, error)
}

type DashboardServiceI interface {
	GetDashboard(ctx context.Context, session *model.Session) (*Dashboard, error)
}

type ProfileServiceI interface {
	GetProfile(ctx context.Context, session *model.Session) (*Profile, error)
	UpdateDailyGoal(ctx context.Context, session *model.Session, goal float64) (*model.UserProgress, error)
}

type CompeteServiceI interface {
	GetLeaderboard(ctx context.Context, session *model.Session) (*Leaderboard, error)
	ListChallenges(ctx context.Context, session *model.Session) ([]*ChallengeView, error)
	JoinChallenge(ctx context.Context, session *model.Session, challengeID string) (*model.Challenge, error)
}

type TriviaServiceI interface {
	NewGame(session *model.Session) *TriviaGame
	NextQuestion(ctx context.Context, game *TriviaGame) (*QuestionView, error)
	Answer(ctx context.Context, game *TriviaGame, answer string) (*AnswerResult, error)
}

type LocalServiceI interface {
	ListEvents(ctx context.Context, session *model.Session) ([]*EventView, error)
	RegisterForEvent(ctx context.Context, session *model.Session, eventID string) (*model.VolunteerEvent, error)
	UpdateLocation(ctx context.Context, session *model.Session, location string) (*model.User, error)
}

type EcoBotServiceI interface {
	Chat(ctx context.Context, message string) (*ChatReply, error)
}
