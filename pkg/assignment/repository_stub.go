package assignment

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	statuses map[int]Statuses
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{statuses: make(map[int]Statuses)}
}

func (r *RepositoryStub) GetStatuses(ctx context.Context, userId int) (Statuses, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(Statuses, len(r.statuses[userId]))
	for id, status := range r.statuses[userId] {
		result[id] = status
	}
	return result, nil
}

func (r *RepositoryStub) SetStatus(ctx context.Context, userId int, assignmentId string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statuses[userId] == nil {
		r.statuses[userId] = make(Statuses)
	}
	r.statuses[userId][assignmentId] = status
	return nil
}
