package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/meetcal/meetcal/internal/event_bus"
	"github.com/meetcal/meetcal/internal/utils"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrUnknownSource = errors.New("unknown import source")

type BulkImporter interface {
	BulkImport(ctx context.Context, events []schedule.Event) (int, error)
}

type Result struct {
	Source   string
	Fetched  int
	Inserted int
}

type Service interface {
	// Import fetches the current user's events from the named source and stores
	// the ones not imported before.
	Import(ctx context.Context, sourceName string) (Result, error)
	Sources() []string
}

type ServiceImpl struct {
	store       BulkImporter
	eventBus    *event_bus.EventBus
	clock       utils.Clock
	horizonDays int
	sources     map[string]Source
}

func NewService(store BulkImporter, eventBus *event_bus.EventBus, clock utils.Clock, horizonDays int, sources ...Source) *ServiceImpl {
	byName := make(map[string]Source, len(sources))
	for _, s := range sources {
		byName[s.Name()] = s
	}
	return &ServiceImpl{
		store:       store,
		eventBus:    eventBus,
		clock:       clock,
		horizonDays: horizonDays,
		sources:     byName,
	}
}

func (s *ServiceImpl) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *ServiceImpl) Import(ctx context.Context, sourceName string) (Result, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get current user: %w", err)
	}
	source, ok := s.sources[sourceName]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownSource, sourceName)
	}

	from, to := utils.Horizon(s.clock, s.horizonDays)
	events, err := source.Fetch(ctx, currentUser, from, to)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch events from %s: %w", sourceName, err)
	}
	events = usable(sourceName, events)
	inserted, err := s.store.BulkImport(ctx, events)
	if err != nil {
		return Result{}, err
	}
	log.Infof("imported %d of %d events from %s for user %d", inserted, len(events), sourceName, currentUser.Id)

	result := Result{Source: sourceName, Fetched: len(events), Inserted: inserted}
	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ImportCompletedType, event_bus.ImportCompleted{
			UserId:     currentUser.Id,
			Source:     sourceName,
			Fetched:    result.Fetched,
			Inserted:   result.Inserted,
			FinishedAt: s.clock.Now(),
		}))
		if err != nil {
			log.Warnf("import of user %d stored but completion handling failed: %v", currentUser.Id, err)
		}
	}
	return result, nil
}

// usable drops fetched events that would not pass store validation, so one broken
// upstream entry does not reject the rest of the batch.
func usable(sourceName string, events []schedule.Event) []schedule.Event {
	valid := make([]schedule.Event, 0, len(events))
	for _, e := range events {
		if _, err := schedule.Normalize(e); err != nil {
			log.Warnf("skipping event from %s: %v", sourceName, err)
			continue
		}
		valid = append(valid, e)
	}
	return valid
}
