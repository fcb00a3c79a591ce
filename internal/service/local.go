package service

import (
	"context"
	"errors"
	"strings"

	"ecotrack/internal/catalog"
	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"
)

type EventView struct {
	*model.VolunteerEvent
	SpotsLeft  int  `json:"spots_left"`
	Registered bool `json:"registered"`
}

type LocalService struct {
	repo     Repository
	progress *ProgressService
	profiles ProfileGateway
	locks    *userLocks
}

func NewLocalService(repo Repository, progress *ProgressService, profiles ProfileGateway) *LocalService {
	return &LocalService{
		repo:     repo,
		progress: progress,
		profiles: profiles,
		locks:    newUserLocks(),
	}
}

func (s *LocalService) ListEvents(ctx context.Context, session *model.Session) ([]*EventView, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		logger.Logger().Error("failed to list events", zap.Error(err))
		return nil, backendErr("list events", err)
	}

	email := session.UserEmail()
	views := make([]*EventView, 0, len(events))
	for _, e := range events {
		views = append(views, &EventView{
			VolunteerEvent: e,
			SpotsLeft:      e.SpotsLeft(),
			Registered:     email != "" && e.IsRegistered(email),
		})
	}
	return views, nil
}

// RegisterForEvent adds the caller to the event. Registering twice is a no-op;
// a full event with a capacity rejects new users with ErrEventFull.
func (s *LocalService) RegisterForEvent(ctx context.Context, session *model.Session, eventID string) (*model.VolunteerEvent, error) {
	log := logger.Logger()

	email := session.UserEmail()
	if email == "" {
		return nil, ErrNotAuthenticated
	}

	unlock := s.locks.Lock(eventID)
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		unlock()
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, backendErr("get event", err)
	}

	if event.IsRegistered(email) {
		unlock()
		return event, nil
	}
	if event.IsFull() {
		unlock()
		return nil, ErrEventFull
	}

	registered := append(append([]string(nil), event.RegisteredUsers...), email)
	updated, err := s.repo.UpdateEventRegistrations(ctx, eventID, registered)
	unlock()
	if err != nil {
		log.Error("failed to register for event",
			zap.String("event_id", eventID),
			zap.String("user_email", email),
			zap.Error(err))
		return nil, backendErr("update event", err)
	}

	if err := s.awardCommunityBadge(ctx, email); err != nil {
		log.Warn("failed to evaluate event badges", zap.String("user_email", email), zap.Error(err))
	}

	return updated, nil
}

func (s *LocalService) awardCommunityBadge(ctx context.Context, email string) error {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return backendErr("list events", err)
	}

	count := 0
	for _, e := range events {
		if e.IsRegistered(email) {
			count++
		}
	}

	_, err = s.progress.AwardBadges(ctx, email, map[catalog.BadgeMetric]float64{
		catalog.MetricEventsRegistered: float64(count),
	})
	return err
}

// UpdateLocation stores a trimmed location on the caller's profile. Empty or unchanged input is a no-op.
func (s *LocalService) UpdateLocation(ctx context.Context, session *model.Session, location string) (*model.User, error) {
	if session.UserEmail() == "" {
		return nil, ErrNotAuthenticated
	}

	current := &model.User{
		Email:    session.Email,
		FullName: session.FullName,
		Location: session.Location,
	}

	location = strings.TrimSpace(location)
	if location == "" || location == session.Location {
		return current, nil
	}

	user, err := s.profiles.UpdateCurrentUser(ctx, session.Token, map[string]any{"location": location})
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return nil, err
		}
		logger.Logger().Error("failed to update location", zap.String("user_email", session.Email), zap.Error(err))
		return nil, backendErr("update current user", err)
	}

	return user, nil
}
