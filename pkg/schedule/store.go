package schedule

import (
	"context"
	"fmt"

	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Store manages the custom events of the current user. Every write validates its
// input first, then runs load-modify-save inside one repository transaction.
type Store interface {
	Add(ctx context.Context, event Event) (Event, error)
	// Update replaces every custom record with the event's id; an unknown id is added.
	Update(ctx context.Context, event Event) (Event, error)
	// Delete removes the custom records with id; an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
	// BulkImport stores the events whose id is not stored yet and returns how many were stored.
	BulkImport(ctx context.Context, events []Event) (int, error)
	GetCustom(ctx context.Context) ([]Event, error)
	GetMerged(ctx context.Context, baseline []Event) ([]Event, error)
}

type StoreImpl struct {
	repo Repository
}

func NewStore(repo Repository) *StoreImpl {
	return &StoreImpl{repo: repo}
}

func (s *StoreImpl) Add(ctx context.Context, event Event) (Event, error) {
	normalized, err := Normalize(event)
	if err != nil {
		return Event{}, err
	}
	err = s.modify(ctx, func(custom []Event) []Event {
		return append(custom, normalized)
	})
	if err != nil {
		return Event{}, err
	}
	log.Debugf("added custom event %s", normalized.Id)
	return normalized, nil
}

func (s *StoreImpl) Update(ctx context.Context, event Event) (Event, error) {
	normalized, err := Normalize(event)
	if err != nil {
		return Event{}, err
	}
	err = s.modify(ctx, func(custom []Event) []Event {
		return append(without(custom, normalized.Id), normalized)
	})
	if err != nil {
		return Event{}, err
	}
	log.Debugf("updated custom event %s", normalized.Id)
	return normalized, nil
}

func (s *StoreImpl) Delete(ctx context.Context, id string) error {
	return s.modify(ctx, func(custom []Event) []Event {
		remaining := without(custom, id)
		if len(remaining) == len(custom) {
			log.Debugf("custom event %s not stored, nothing to delete", id)
		}
		return remaining
	})
}

func (s *StoreImpl) BulkImport(ctx context.Context, events []Event) (int, error) {
	normalized, err := NormalizeAll(events)
	if err != nil {
		return 0, err
	}
	inserted := 0
	err = s.modify(ctx, func(custom []Event) []Event {
		known := make(map[string]struct{}, len(custom)+len(normalized))
		for _, e := range custom {
			known[e.Id] = struct{}{}
		}
		for _, e := range normalized {
			if _, ok := known[e.Id]; ok {
				continue
			}
			known[e.Id] = struct{}{}
			custom = append(custom, e)
			inserted++
		}
		return custom
	})
	if err != nil {
		return 0, err
	}
	log.Debugf("bulk import stored %d of %d events", inserted, len(events))
	return inserted, nil
}

func (s *StoreImpl) GetCustom(ctx context.Context) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	custom, err := s.repo.Load(ctx, userId)
	if err != nil {
		log.Errorf("failed to load custom events of user %d: %v", userId, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return custom, nil
}

func (s *StoreImpl) GetMerged(ctx context.Context, baseline []Event) ([]Event, error) {
	custom, err := s.GetCustom(ctx)
	if err != nil {
		return nil, err
	}
	return Merge(baseline, custom), nil
}

// modify runs a load-modify-save cycle for the current user in one transaction.
func (s *StoreImpl) modify(ctx context.Context, change func(custom []Event) []Event) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		custom, err := repo.Load(ctx, userId)
		if err != nil {
			return err
		}
		return repo.Save(ctx, userId, change(custom))
	})
	if err != nil {
		log.Errorf("failed to store custom events of user %d: %v", userId, err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func without(events []Event, id string) []Event {
	kept := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	return kept
}
