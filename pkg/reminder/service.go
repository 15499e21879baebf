package reminder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meetcal/meetcal/pkg/timeutil"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Add(ctx context.Context, reminder Reminder) (Reminder, error)
	List(ctx context.Context, date string) ([]Reminder, error)
	Toggle(ctx context.Context, id string) (Reminder, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Add(ctx context.Context, reminder Reminder) (Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Reminder{}, fmt.Errorf("failed to get current user: %w", err)
	}
	reminder, err = validate(reminder)
	if err != nil {
		return Reminder{}, err
	}
	reminder.Id = uuid.NewString()
	reminder.Completed = false
	log.Debugf("adding reminder %s for %s", reminder.Id, reminder.Date)
	return s.repo.Store(ctx, userId, reminder)
}

func (s *ServiceImpl) List(ctx context.Context, date string) ([]Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if date != "" {
		if err := timeutil.ValidateDate(date); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, userId, date)
}

func (s *ServiceImpl) Toggle(ctx context.Context, id string) (Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Reminder{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return Reminder{}, ErrReminderNotFound
	}
	return s.repo.Toggle(ctx, userId, id)
}
