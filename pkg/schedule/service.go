package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/meetcal/meetcal/pkg/timeutil"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Baseline is the read-only cohort schedule a user's custom events are merged onto.
type Baseline struct {
	GroupMentor        string
	Events             []Event
	GeneralAssignments []Assignment
}

type BaselineProvider interface {
	Baseline(cohort, group string) Baseline
}

// Schedule is the merged view served to the user.
type Schedule struct {
	GroupMentor        string
	Events             []Event
	GeneralAssignments []Assignment
}

type DayCount struct {
	Date   string
	Events int
}

type Service interface {
	GetSchedule(ctx context.Context) (Schedule, error)
	// GetDay returns the merged events whose date equals date, in merged order.
	GetDay(ctx context.Context, date string) ([]Event, error)
	// GetMonthSummary counts merged events per date of month (YYYY-MM), ascending by date.
	GetMonthSummary(ctx context.Context, month string) ([]DayCount, error)
}

type ServiceImpl struct {
	store     Store
	baselines BaselineProvider
}

func NewService(store Store, baselines BaselineProvider) *ServiceImpl {
	return &ServiceImpl{store: store, baselines: baselines}
}

func (s *ServiceImpl) GetSchedule(ctx context.Context) (Schedule, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to get current user: %w", err)
	}
	baseline := s.baselines.Baseline(currentUser.Cohort, currentUser.Group)
	merged, err := s.store.GetMerged(ctx, baseline.Events)
	if err != nil {
		return Schedule{}, err
	}
	log.Tracef("merged %d baseline events into schedule of %d events", len(baseline.Events), len(merged))
	return Schedule{
		GroupMentor:        baseline.GroupMentor,
		Events:             merged,
		GeneralAssignments: baseline.GeneralAssignments,
	}, nil
}

func (s *ServiceImpl) GetDay(ctx context.Context, date string) ([]Event, error) {
	if err := timeutil.ValidateDate(date); err != nil {
		return nil, err
	}
	schedule, err := s.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}
	day := make([]Event, 0)
	for _, e := range schedule.Events {
		if timeutil.CompareDates(e.Date, date) == 0 {
			day = append(day, e)
		}
	}
	return day, nil
}

func (s *ServiceImpl) GetMonthSummary(ctx context.Context, month string) ([]DayCount, error) {
	if err := timeutil.ValidateMonth(month); err != nil {
		return nil, err
	}
	schedule, err := s.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, e := range schedule.Events {
		if strings.HasPrefix(e.Date, month+"-") {
			counts[e.Date]++
		}
	}
	summary := make([]DayCount, 0, len(counts))
	for date, n := range counts {
		summary = append(summary, DayCount{Date: date, Events: n})
	}
	sort.Slice(summary, func(i, j int) bool {
		return timeutil.CompareDates(summary[i].Date, summary[j].Date) < 0
	})
	return summary, nil
}
