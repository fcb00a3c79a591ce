package api

import (
	"context"

	"ecotrack/internal/model"
	"ecotrack/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Preview(category, subcategory string, quantity float64) (*service.ImpactPreview, error) {
	args := m.Called(category, subcategory, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImpactPreview), args.Error(1)
}

func (m *MockActivityService) Record(ctx context.Context, session *model.Session, in service.LogActivityInput) (*service.RecordResult, error) {
	args := m.Called(ctx, session, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecordResult), args.Error(1)
}

func (m *MockActivityService) QuickOffset(ctx context.Context, session *model.Session, actionName string) (*service.RecordResult, error) {
	args := m.Called(ctx, session, actionName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecordResult), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, session *model.Session) (*service.Dashboard, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, session *model.Session) (*service.Profile, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateDailyGoal(ctx context.Context, session *model.Session, goal float64) (*model.UserProgress, error) {
	args := m.Called(ctx, session, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProgress), args.Error(1)
}

type MockCompeteService struct {
	mock.Mock
}

func (m *MockCompeteService) GetLeaderboard(ctx context.Context, session *model.Session) (*service.Leaderboard, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Leaderboard), args.Error(1)
}

func (m *MockCompeteService) ListChallenges(ctx context.Context, session *model.Session) ([]*service.ChallengeView, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.ChallengeView), args.Error(1)
}

func (m *MockCompeteService) JoinChallenge(ctx context.Context, session *model.Session, challengeID string) (*model.Challenge, error) {
	args := m.Called(ctx, session, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

type MockLocalService struct {
	mock.Mock
}

func (m *MockLocalService) ListEvents(ctx context.Context, session *model.Session) ([]*service.EventView, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.EventView), args.Error(1)
}

func (m *MockLocalService) RegisterForEvent(ctx context.Context, session *model.Session, eventID string) (*model.VolunteerEvent, error) {
	args := m.Called(ctx, session, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VolunteerEvent), args.Error(1)
}

func (m *MockLocalService) UpdateLocation(ctx context.Context, session *model.Session, location string) (*model.User, error) {
	args := m.Called(ctx, session, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockEcoBotService struct {
	mock.Mock
}

func (m *MockEcoBotService) Chat(ctx context.Context, message string) (*service.ChatReply, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatReply), args.Error(1)
}
