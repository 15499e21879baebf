package schedule

import (
	"context"
	"errors"
	"sync"
)

var errStubSaveFailed = errors.New("stub save failed")

// RepositoryStub keeps custom events in memory. FailSave makes every Save fail.
type RepositoryStub struct {
	txMu     sync.Mutex
	mu       sync.Mutex
	events   map[int][]Event
	saves    int
	FailSave bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{events: make(map[int][]Event)}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	snapshot := make(map[int][]Event, len(r.events))
	for userId, events := range r.events {
		snapshot[userId] = events
	}
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.events = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *RepositoryStub) Load(ctx context.Context, userId int) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.events[userId]
	events := make([]Event, len(stored))
	copy(events, stored)
	return events, nil
}

func (r *RepositoryStub) Save(ctx context.Context, userId int, events []Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSave {
		return errStubSaveFailed
	}
	stored := make([]Event, len(events))
	copy(stored, events)
	r.events[userId] = stored
	r.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (r *RepositoryStub) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = make(map[int][]Event)
	r.saves = 0
	r.FailSave = false
}
