package reminder

import (
	"context"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu        sync.RWMutex
	reminders map[int][]Reminder
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{reminders: make(map[int][]Reminder)}
}

func (r *RepositoryStub) Store(ctx context.Context, userId int, reminder Reminder) (Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reminders[userId] = append(r.reminders[userId], reminder)
	return reminder, nil
}

func (r *RepositoryStub) List(ctx context.Context, userId int, date string) ([]Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Reminder, 0)
	for _, reminder := range r.reminders[userId] {
		if date == "" || reminder.Date == date {
			result = append(result, reminder)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (r *RepositoryStub) Toggle(ctx context.Context, userId int, id string) (Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, reminder := range r.reminders[userId] {
		if reminder.Id == id {
			reminder.Completed = !reminder.Completed
			r.reminders[userId][i] = reminder
			return reminder, nil
		}
	}
	return Reminder{}, ErrReminderNotFound
}
