package service

import (
	"context"
	"errors"
	"testing"

	"ecotrack/internal/catalog"
	"ecotrack/internal/model"
	"ecotrack/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLocalService(repo *mocks.MockRepository, profiles *mocks.MockProfileGateway) *LocalService {
	return NewLocalService(repo, NewProgressService(repo, repo, nil, fixedCalendar(testToday)), profiles)
}

func TestLocalService_ListEvents(t *testing.T) {
	repo := &mocks.MockRepository{}
	svc := newLocalService(repo, &mocks.MockProfileGateway{})

	repo.On("ListEvents", mock.Anything).Return([]*model.VolunteerEvent{
		{ID: "e1", MaxParticipants: 10, RegisteredUsers: []string{testEmail, "x@example.com"}},
		{ID: "e2", MaxParticipants: 0},
	}, nil)

	views, err := svc.ListEvents(context.Background(), &model.Session{Email: testEmail})

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 8, views[0].SpotsLeft)
	assert.True(t, views[0].Registered)
	assert.False(t, views[1].Registered)
}

func TestLocalService_RegisterForEvent(t *testing.T) {
	ctx := context.Background()
	session := &model.Session{Email: testEmail}

	tests := []struct {
		name        string
		mockSetup   func(repo *mocks.MockRepository)
		expectedErr error
	}{
		{
			name: "Unknown event",
			mockSetup: func(repo *mocks.MockRepository) {
				repo.On("GetEvent", mock.Anything, "e1").Return(nil, model.ErrNotFound)
			},
			expectedErr: ErrEventNotFound,
		},
		{
			name: "Full event",
			mockSetup: func(repo *mocks.MockRepository) {
				repo.On("GetEvent", mock.Anything, "e1").
					Return(&model.VolunteerEvent{ID: "e1", MaxParticipants: 1, RegisteredUsers: []string{"x@example.com"}}, nil)
			},
			expectedErr: ErrEventFull,
		},
		{
			name: "Already registered on a full event",
			mockSetup: func(repo *mocks.MockRepository) {
				repo.On("GetEvent", mock.Anything, "e1").
					Return(&model.VolunteerEvent{ID: "e1", MaxParticipants: 1, RegisteredUsers: []string{testEmail}}, nil)
			},
		},
		{
			name: "Registers and grants Community Hero on the third event",
			mockSetup: func(repo *mocks.MockRepository) {
				repo.On("GetEvent", mock.Anything, "e1").
					Return(&model.VolunteerEvent{ID: "e1"}, nil)
				repo.On("UpdateEventRegistrations", mock.Anything, "e1", []string{testEmail}).
					Return(&model.VolunteerEvent{ID: "e1", RegisteredUsers: []string{testEmail}}, nil)
				repo.On("ListEvents", mock.Anything).Return([]*model.VolunteerEvent{
					{ID: "e1", RegisteredUsers: []string{testEmail}},
					{ID: "e2", RegisteredUsers: []string{testEmail}},
					{ID: "e3", RegisteredUsers: []string{testEmail}},
				}, nil)
				repo.On("GetProgressByUser", mock.Anything, testEmail).Return(progressRow("", 0), nil)
				repo.On("UpdateProgress", mock.Anything, mock.MatchedBy(func(p *model.UserProgress) bool {
					return p.HasBadge(catalog.BadgeCommunityHero)
				})).Return(&model.UserProgress{}, nil)
			},
		},
		{
			name: "Badge failure does not fail the registration",
			mockSetup: func(repo *mocks.MockRepository) {
				repo.On("GetEvent", mock.Anything, "e1").
					Return(&model.VolunteerEvent{ID: "e1", MaxParticipants: 5}, nil)
				repo.On("UpdateEventRegistrations", mock.Anything, "e1", []string{testEmail}).
					Return(&model.VolunteerEvent{ID: "e1", RegisteredUsers: []string{testEmail}}, nil)
				repo.On("ListEvents", mock.Anything).Return(nil, errors.New("down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockRepository{}
			svc := newLocalService(repo, &mocks.MockProfileGateway{})
			tt.mockSetup(repo)

			event, err := svc.RegisterForEvent(ctx, session, "e1")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, event.IsRegistered(testEmail))
			repo.AssertExpectations(t)
		})
	}
}

func TestLocalService_UpdateLocation(t *testing.T) {
	ctx := context.Background()
	session := &model.Session{Email: testEmail, Location: "Detroit", Token: "tok"}

	t.Run("Empty and unchanged are no-ops", func(t *testing.T) {
		profiles := &mocks.MockProfileGateway{}
		svc := newLocalService(&mocks.MockRepository{}, profiles)

		for _, loc := range []string{"", "   ", "Detroit", " Detroit "} {
			user, err := svc.UpdateLocation(ctx, session, loc)
			require.NoError(t, err)
			assert.Equal(t, "Detroit", user.Location)
		}
		profiles.AssertNotCalled(t, "UpdateCurrentUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Trimmed location is stored", func(t *testing.T) {
		profiles := &mocks.MockProfileGateway{}
		svc := newLocalService(&mocks.MockRepository{}, profiles)

		profiles.On("UpdateCurrentUser", mock.Anything, "tok", map[string]any{"location": "San Diego, California"}).
			Return(&model.User{Email: testEmail, Location: "San Diego, California"}, nil)

		user, err := svc.UpdateLocation(ctx, session, "  San Diego, California ")

		require.NoError(t, err)
		assert.Equal(t, "San Diego, California", user.Location)
		profiles.AssertExpectations(t)
	})

	t.Run("Backend failure", func(t *testing.T) {
		profiles := &mocks.MockProfileGateway{}
		svc := newLocalService(&mocks.MockRepository{}, profiles)

		profiles.On("UpdateCurrentUser", mock.Anything, "tok", mock.Anything).Return(nil, errors.New("502"))

		_, err := svc.UpdateLocation(ctx, session, "Austin")

		assert.ErrorIs(t, err, ErrBackendRequestFailed)
	})
}

func TestEcoBotService_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty message", func(t *testing.T) {
		svc := NewEcoBotService(&mocks.MockTextGenerator{})

		_, err := svc.Chat(ctx, "  ")

		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("Reply from the generator", func(t *testing.T) {
		gen := &mocks.MockTextGenerator{}
		svc := NewEcoBotService(gen)

		gen.On("GenerateText", mock.Anything, EcoBotPrompt("How to compost?"), model.GenerateOptions{}).
			Return("Start with a bin.", nil)

		reply, err := svc.Chat(ctx, " How to compost? ")

		require.NoError(t, err)
		assert.Equal(t, "Start with a bin.", reply.Reply)
		assert.False(t, reply.Fallback)
	})

	t.Run("Generator failure falls back to the apology", func(t *testing.T) {
		gen := &mocks.MockTextGenerator{}
		svc := NewEcoBotService(gen)

		gen.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("llm down"))

		reply, err := svc.Chat(ctx, "hello")

		require.NoError(t, err)
		assert.Equal(t, catalog.EcoBotApology, reply.Reply)
		assert.True(t, reply.Fallback)
	})
}
