package mocks

import (
	"context"

	"ecotrack/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateActivity(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	args := m.Called(ctx, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func (m *MockRepository) ListActivitiesByUser(ctx context.Context, email string, limit int) ([]*model.Activity, error) {
	args := m.Called(ctx, email, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Activity), args.Error(1)
}

func (m *MockRepository) GetProgressByUser(ctx context.Context, email string) (*model.UserProgress, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProgress), args.Error(1)
}

func (m *MockRepository) UpdateProgress(ctx context.Context, progress *model.UserProgress) (*model.UserProgress, error) {
	args := m.Called(ctx, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProgress), args.Error(1)
}

func (m *MockRepository) ListProgressByPoints(ctx context.Context, limit int) ([]*model.UserProgress, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UserProgress), args.Error(1)
}

func (m *MockRepository) ListChallenges(ctx context.Context) ([]*model.Challenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockRepository) GetChallenge(ctx context.Context, id string) (*model.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockRepository) UpdateChallengeParticipants(ctx context.Context, id string, participants []string) (*model.Challenge, error) {
	args := m.Called(ctx, id, participants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockRepository) ListTriviaQuestions(ctx context.Context) ([]*model.TriviaQuestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TriviaQuestion), args.Error(1)
}

func (m *MockRepository) ListEvents(ctx context.Context) ([]*model.VolunteerEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VolunteerEvent), args.Error(1)
}

func (m *MockRepository) GetEvent(ctx context.Context, id string) (*model.VolunteerEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VolunteerEvent), args.Error(1)
}

func (m *MockRepository) UpdateEventRegistrations(ctx context.Context, id string, registeredUsers []string) (*model.VolunteerEvent, error) {
	args := m.Called(ctx, id, registeredUsers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VolunteerEvent), args.Error(1)
}

type MockProfileGateway struct {
	mock.Mock
}

func (m *MockProfileGateway) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProfileGateway) UpdateCurrentUser(ctx context.Context, token string, fields map[string]any) (*model.User, error) {
	args := m.Called(ctx, token, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string, opts model.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Get(ctx context.Context) ([]*model.UserProgress, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*model.UserProgress), args.Bool(1), args.Error(2)
}

func (m *MockLeaderboardCache) Set(ctx context.Context, rows []*model.UserProgress) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockLeaderboardCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
