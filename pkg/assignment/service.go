package assignment

import (
	"context"
	"fmt"

	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Order string

const (
	ByStatus      Order = ""
	DoneLastOrder Order = "doneLast"
)

type ScheduleReader interface {
	GetSchedule(ctx context.Context) (schedule.Schedule, error)
}

// Worklist is the current user's assignments in display order with their progress.
type Worklist struct {
	Entries  []Entry
	Statuses Statuses
	Summary  Summary
}

type Service interface {
	GetWorklist(ctx context.Context, order Order) (Worklist, error)
	SetStatus(ctx context.Context, assignmentId string, status Status) (Status, error)
	// CycleStatus moves the assignment to its next status and returns it.
	CycleStatus(ctx context.Context, assignmentId string) (Status, error)
}

type ServiceImpl struct {
	repo      Repository
	schedules ScheduleReader
}

func NewService(repo Repository, schedules ScheduleReader) *ServiceImpl {
	return &ServiceImpl{repo: repo, schedules: schedules}
}

func (s *ServiceImpl) GetWorklist(ctx context.Context, order Order) (Worklist, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Worklist{}, fmt.Errorf("failed to get current user: %w", err)
	}
	entries, err := s.collect(ctx)
	if err != nil {
		return Worklist{}, err
	}
	statuses, err := s.repo.GetStatuses(ctx, userId)
	if err != nil {
		return Worklist{}, fmt.Errorf("%w: %w", schedule.ErrPersistence, err)
	}

	switch order {
	case DoneLastOrder:
		entries = DoneLast(entries, statuses.Of)
	default:
		entries = SortForDisplay(entries, statuses.Of)
	}
	return Worklist{
		Entries:  entries,
		Statuses: statuses,
		Summary:  ProgressSummary(entries, statuses.Of),
	}, nil
}

func (s *ServiceImpl) SetStatus(ctx context.Context, assignmentId string, status Status) (Status, error) {
	if status.rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.ensureKnown(ctx, assignmentId); err != nil {
		return "", err
	}
	log.Debugf("setting status of assignment %s to %s", assignmentId, status)
	if err := s.repo.SetStatus(ctx, userId, assignmentId, status); err != nil {
		return "", fmt.Errorf("%w: %w", schedule.ErrPersistence, err)
	}
	return status, nil
}

func (s *ServiceImpl) CycleStatus(ctx context.Context, assignmentId string) (Status, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.ensureKnown(ctx, assignmentId); err != nil {
		return "", err
	}
	statuses, err := s.repo.GetStatuses(ctx, userId)
	if err != nil {
		return "", fmt.Errorf("%w: %w", schedule.ErrPersistence, err)
	}
	next := statuses.Of(assignmentId).Next()
	log.Debugf("cycling status of assignment %s to %s", assignmentId, next)
	if err := s.repo.SetStatus(ctx, userId, assignmentId, next); err != nil {
		return "", fmt.Errorf("%w: %w", schedule.ErrPersistence, err)
	}
	return next, nil
}

func (s *ServiceImpl) collect(ctx context.Context) ([]Entry, error) {
	current, err := s.schedules.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}
	return CollectAll(current.Events, current.GeneralAssignments), nil
}

// ensureKnown rejects ids that are not part of the user's current schedule.
func (s *ServiceImpl) ensureKnown(ctx context.Context, assignmentId string) error {
	entries, err := s.collect(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Id == assignmentId {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrAssignmentNotFound, assignmentId)
}
