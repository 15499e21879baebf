package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meetcal/meetcal/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrUserDataInvalid = errors.New("invalid user data")

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	FindUsersWithIcsFeed(ctx context.Context) ([]User, error)
}

type ServiceImpl struct {
	repo Repository
}

// NewService creates the user service and subscribes it to import completions so
// that LastSyncedAt follows successful imports.
func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	s := &ServiceImpl{repo: repo}
	if eventBus != nil {
		event_bus.SubscribeTyped(eventBus, event_bus.ImportCompletedType, s.onImportCompleted)
	}
	return s
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetUser(ctx, userId)
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Username == "" || user.DisplayName == "" {
		return User{}, ErrUserDataInvalid
	}
	if user.Settings.Timezone != "" {
		if _, err := time.LoadLocation(user.Settings.Timezone); err != nil {
			return User{}, fmt.Errorf("%w: unknown timezone %s", ErrUserDataInvalid, user.Settings.Timezone)
		}
	}
	available, err := s.repo.IsUsernameAvailable(ctx, user.Username)
	if err != nil {
		return User{}, err
	}
	if !available {
		return User{}, fmt.Errorf("%w: username %s is taken", ErrUserDataInvalid, user.Username)
	}
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	userId, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	log.Debugf("created user %d (%s)", user.Id, user.Username)
	return user, nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func (s *ServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if user.DisplayName == "" {
		return User{}, ErrUserDataInvalid
	}
	if user.Settings.Timezone != "" {
		if _, err := time.LoadLocation(user.Settings.Timezone); err != nil {
			return User{}, fmt.Errorf("%w: unknown timezone %s", ErrUserDataInvalid, user.Settings.Timezone)
		}
	}
	return s.repo.UpdateUser(ctx, userId, user)
}

func (s *ServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return s.repo.IsUsernameAvailable(ctx, username)
}

func (s *ServiceImpl) FindUsersWithIcsFeed(ctx context.Context) ([]User, error) {
	return s.repo.FindUsersWithIcsFeed(ctx)
}

func (s *ServiceImpl) onImportCompleted(e event_bus.EventT[event_bus.ImportCompleted]) error {
	log.Debugf("recording sync of user %d from %s", e.Data.UserId, e.Data.Source)
	if err := s.repo.UpdateLastSyncedAt(e.Context(), e.Data.UserId, e.Data.FinishedAt); err != nil {
		return fmt.Errorf("failed to record last sync of user %d: %w", e.Data.UserId, err)
	}
	return nil
}
